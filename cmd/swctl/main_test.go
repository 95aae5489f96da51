package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openrail/swctl/domain/entities"
	"github.com/openrail/swctl/infrastructure/config"
)

func TestCommandsRegistered(t *testing.T) {
	expected := map[string]bool{
		"apply":    false,
		"render":   false,
		"facts":    false,
		"discover": false,
		"version":  false,
	}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := expected[cmd.Name()]; ok {
			expected[cmd.Name()] = true
		}
	}
	for name, found := range expected {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestResolveConfigPathFlag(t *testing.T) {
	orig := cfgFile
	defer func() { cfgFile = orig }()

	cfgFile = "/tmp/custom.yaml"
	path, err := resolveConfigPath()
	if err != nil {
		t.Fatalf("resolveConfigPath() returned error: %v", err)
	}
	if path != "/tmp/custom.yaml" {
		t.Errorf("unexpected path: %q", path)
	}
}

func TestResolveConfigPathSearchesWorkingDir(t *testing.T) {
	orig := cfgFile
	defer func() { cfgFile = orig }()
	cfgFile = ""

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, defaultConfigName), []byte("username: a\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	oldWd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(oldWd)

	path, err := resolveConfigPath()
	if err != nil {
		t.Fatalf("resolveConfigPath() returned error: %v", err)
	}
	if filepath.Base(path) != defaultConfigName {
		t.Errorf("unexpected path: %q", path)
	}
}

func TestSelectDevices(t *testing.T) {
	orig := target
	defer func() { target = orig }()

	cfg := &config.Config{
		Devices: []entities.DeviceConfig{
			{Target: "10.0.0.1"},
			{Target: "10.0.0.2"},
		},
	}

	target = ""
	devices, err := selectDevices(cfg)
	if err != nil {
		t.Fatalf("selectDevices() returned error: %v", err)
	}
	if len(devices) != 2 {
		t.Errorf("expected all devices, got %d", len(devices))
	}

	target = "10.0.0.2"
	devices, err = selectDevices(cfg)
	if err != nil {
		t.Fatalf("selectDevices() returned error: %v", err)
	}
	if len(devices) != 1 || devices[0].Target != "10.0.0.2" {
		t.Errorf("unexpected selection: %v", devices)
	}

	target = "10.9.9.9"
	if _, err := selectDevices(cfg); err == nil {
		t.Error("expected error for unknown target")
	}
}
