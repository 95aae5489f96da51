package entities

import (
	"errors"
	"reflect"
	"testing"
)

func TestVlanSpecValidate(t *testing.T) {
	cases := []struct {
		name    string
		spec    VlanSpec
		wantErr bool
	}{
		{"minimum", VlanSpec{ID: 1}, false},
		{"maximum", VlanSpec{ID: 4094}, false},
		{"named", VlanSpec{ID: 5, Name: "test-vlan5"}, false},
		{"zero", VlanSpec{ID: 0}, true},
		{"negative", VlanSpec{ID: -3}, true},
		{"above range", VlanSpec{ID: 4095}, true},
	}
	for _, tc := range cases {
		err := tc.spec.Validate()
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected error for vlan %d", tc.name, tc.spec.ID)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
		if tc.wantErr && !errors.Is(err, ErrValidation) {
			t.Errorf("%s: error does not unwrap to ErrValidation: %v", tc.name, err)
		}
	}
}

func TestBindingValidate(t *testing.T) {
	valid := InterfaceVlanBinding{Interface: "1/3", VlanID: 5, Mode: Tagged}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	badMode := InterfaceVlanBinding{Interface: "1/3", VlanID: 5, Mode: "trunk"}
	if err := badMode.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for mode, got %v", err)
	}
	noIface := InterfaceVlanBinding{VlanID: 5, Mode: Untagged}
	if err := noIface.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for missing interface, got %v", err)
	}
}

func TestDeviceConfigBindings(t *testing.T) {
	cfg := DeviceConfig{
		Interfaces: []InterfacePolicy{
			{Name: "1/3", Vlans: []VlanBinding{{VlanID: 5, Mode: Tagged}, {VlanID: 10, Mode: Untagged}}},
			{Name: "1/7", Vlans: []VlanBinding{{VlanID: 5, Mode: Untagged}}},
		},
	}
	got := cfg.Bindings()
	expected := []InterfaceVlanBinding{
		{Interface: "1/3", VlanID: 5, Mode: Tagged},
		{Interface: "1/3", VlanID: 10, Mode: Untagged},
		{Interface: "1/7", VlanID: 5, Mode: Untagged},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("unexpected bindings: %v", got)
	}
}

func TestVlanFactsLookups(t *testing.T) {
	facts := VlanFacts{Vlans: []VlanSpec{{ID: 1, Name: "default"}, {ID: 8, Name: "RIS"}}}
	if !facts.HasVlan(8) {
		t.Fatal("expected vlan 8 to be present")
	}
	if facts.HasVlan(9) {
		t.Fatal("vlan 9 should be absent")
	}
	if name := facts.VlanName(8); name != "RIS" {
		t.Fatalf("unexpected name for vlan 8: %q", name)
	}
	if name := facts.VlanName(9); name != "" {
		t.Fatalf("expected empty name for missing vlan, got %q", name)
	}
}
