package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openrail/swctl/domain/entities"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "swctl.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

const sampleConfig = `
transport: telnet
username: admin
password: secret
snmp_community: public
devices:
  - target: 192.168.1.10
    platform: hios
    vlans:
      - vlan_id: 5
        name: test-vlan5
      - vlan_id: 10
    interfaces:
      - name: 1/3
        vlans:
          - vlan_id: 5
            mode: tagged
  - target: 192.168.1.20
    platform: nxos
    transport: ssh
    username: operator
    state: deleted
    vlans:
      - vlan_id: 99
`

func TestLoadInheritsGlobals(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	cfg, err := Load(path, false, false)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if len(cfg.Devices) != 2 {
		t.Fatalf("expected 2 devices, got %d", len(cfg.Devices))
	}

	first := cfg.Devices[0]
	if first.Transport != "telnet" {
		t.Errorf("expected inherited transport telnet, got %q", first.Transport)
	}
	if first.Username != "admin" || first.Password != "secret" {
		t.Errorf("expected inherited credentials, got %q/%q", first.Username, first.Password)
	}
	if first.SnmpCommunity != "public" {
		t.Errorf("expected inherited snmp community, got %q", first.SnmpCommunity)
	}
	if first.State != entities.StateMerged {
		t.Errorf("expected default state merged, got %q", first.State)
	}
	if !first.Sandbox {
		t.Error("expected sandbox mode when execute is false")
	}

	second := cfg.Devices[1]
	if second.Transport != "ssh" {
		t.Errorf("device override lost, transport = %q", second.Transport)
	}
	if second.Username != "operator" {
		t.Errorf("device override lost, username = %q", second.Username)
	}
	if second.Password != "secret" {
		t.Errorf("expected inherited password, got %q", second.Password)
	}
	if second.State != entities.StateDeleted {
		t.Errorf("device override lost, state = %q", second.State)
	}
}

func TestLoadExecuteDisablesSandbox(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	cfg, err := Load(path, true, false)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	for _, dev := range cfg.Devices {
		if dev.Sandbox {
			t.Errorf("device %s still in sandbox mode with execute enabled", dev.Target)
		}
	}
}

func TestLoadRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name    string
		content string
		errPart string
	}{
		{
			name:    "no devices",
			content: "username: admin\npassword: x\n",
			errPart: "no devices",
		},
		{
			name:    "missing target",
			content: "username: a\npassword: b\ndevices:\n  - platform: hios\n",
			errPart: "target is required",
		},
		{
			name:    "bad transport",
			content: "username: a\npassword: b\ndevices:\n  - target: h\n    transport: serial\n",
			errPart: "transport serial is invalid",
		},
		{
			name:    "bad platform",
			content: "username: a\npassword: b\ndevices:\n  - target: h\n    platform: ios\n",
			errPart: "platform ios is invalid",
		},
		{
			name:    "bad state",
			content: "username: a\npassword: b\ndevices:\n  - target: h\n    state: replaced\n",
			errPart: "state replaced is invalid",
		},
		{
			name:    "missing username",
			content: "password: b\ndevices:\n  - target: h\n",
			errPart: "username is required",
		},
		{
			name:    "vlan out of range",
			content: "username: a\npassword: b\ndevices:\n  - target: h\n    vlans:\n      - vlan_id: 5000\n",
			errPart: "vlan_id",
		},
		{
			name:    "duplicate vlan",
			content: "username: a\npassword: b\ndevices:\n  - target: h\n    vlans:\n      - vlan_id: 5\n      - vlan_id: 5\n",
			errPart: "more than once",
		},
		{
			name:    "bad binding mode",
			content: "username: a\npassword: b\ndevices:\n  - target: h\n    interfaces:\n      - name: 1/1\n        vlans:\n          - vlan_id: 5\n            mode: trunk\n",
			errPart: "mode",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.content)
			_, err := Load(path, false, false)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.errPart) {
				t.Fatalf("error %q does not mention %q", err, tc.errPart)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), false, false); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDeviceLookup(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	cfg, err := Load(path, false, false)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	dev, err := cfg.Device("192.168.1.20")
	if err != nil {
		t.Fatalf("Device() returned error: %v", err)
	}
	if dev.Platform != "nxos" {
		t.Errorf("unexpected device: %+v", dev)
	}

	if _, err := cfg.Device("10.0.0.1"); err == nil {
		t.Error("expected error for unknown target")
	}
}

func TestDeviceBindingsOrder(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	cfg, err := Load(path, false, false)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	bindings := cfg.Devices[0].Bindings()
	if len(bindings) != 1 {
		t.Fatalf("expected 1 binding, got %v", bindings)
	}
	if bindings[0].Interface != "1/3" || bindings[0].VlanID != 5 || bindings[0].Mode != entities.Tagged {
		t.Errorf("unexpected binding: %+v", bindings[0])
	}
}
