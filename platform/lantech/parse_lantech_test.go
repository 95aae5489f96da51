package lantech

import (
	"reflect"
	"strings"
	"testing"

	"github.com/openrail/swctl/domain/entities"
)

func TestParseVlanTable(t *testing.T) {
	output := `VLAN ID  Name
-------  ----------------
1        default
5        test-vlan5
200
`
	specs := parseVlanTable(output)
	expected := []entities.VlanSpec{
		{ID: 1, Name: "default"},
		{ID: 5, Name: "test-vlan5"},
		{ID: 200},
	}
	if !reflect.DeepEqual(specs, expected) {
		t.Fatalf("unexpected specs: %v", specs)
	}
}

func TestParseSystemConfiguration(t *testing.T) {
	output := `System Configuration
Name              rail-edge-03
MAC Address       00:40:8c:11:22:33
Firmware Version  v2.18
`
	info := parseSystemConfiguration(output)
	if info.Hostname != "rail-edge-03" {
		t.Errorf("unexpected hostname: %q", info.Hostname)
	}
	if info.ManagementMAC != "00:40:8c:11:22:33" {
		t.Errorf("unexpected MAC: %q", info.ManagementMAC)
	}
	if info.OSVersion != "v2.18" {
		t.Errorf("unexpected firmware version: %q", info.OSVersion)
	}
}

func TestRenderedCommandsDialect(t *testing.T) {
	driver := New()
	create := driver.CreateVlanCommands(entities.VlanSpec{ID: 5, Name: "test-vlan5"})
	if !reflect.DeepEqual(create, []string{"vlan add 5 name test-vlan5"}) {
		t.Fatalf("unexpected create commands: %v", create)
	}
	bind := driver.InterfaceVlanCommands("3", []entities.InterfaceVlanBinding{
		{Interface: "3", VlanID: 5, Mode: entities.Tagged},
		{Interface: "3", VlanID: 10, Mode: entities.Untagged},
	})
	expected := []string{
		"vlan port 3 add 5 tagged",
		"vlan port 3 add 10 untagged",
	}
	if !reflect.DeepEqual(bind, expected) {
		t.Fatalf("unexpected binding commands: %v", bind)
	}
	if !driver.IsCommandError("Invalid parameter") {
		t.Fatal("expected Invalid parameter to register as command error")
	}
	if driver.IsCommandError(strings.Join(create, "\n")) {
		t.Fatal("rendered commands must not register as errors")
	}
}

// Creating VLANs then parsing the resulting table must yield the declared set.
func TestVlanTableRoundTrip(t *testing.T) {
	declared := []entities.VlanSpec{{ID: 5, Name: "test-vlan5"}, {ID: 10}}
	// Device reports the result in its static VLAN table.
	table := "VLAN ID  Name\n-------  ----\n5        test-vlan5\n10\n"
	parsed := parseVlanTable(table)
	if !reflect.DeepEqual(parsed, declared) {
		t.Fatalf("round trip mismatch: declared %v, parsed %v", declared, parsed)
	}
}
