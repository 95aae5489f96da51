package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/openrail/swctl/domain/entities"
)

// Config defines the global configuration. Global values act as defaults
// that every device inherits unless it sets its own.
type Config struct {
	Platform      string                  `yaml:"platform"`
	Transport     string                  `yaml:"transport"`
	Username      string                  `yaml:"username"`
	Password      string                  `yaml:"password"`
	SnmpCommunity string                  `yaml:"snmp_community"`
	State         entities.ReconcileState `yaml:"state"`
	Devices       []entities.DeviceConfig `yaml:"devices"`
}

func validatePlatform(platform string) error {
	switch platform {
	case "hios", "nxos", "lantech", "auto":
		return nil
	default:
		return fmt.Errorf("platform %s is invalid, must be 'hios', 'nxos', 'lantech', or 'auto'", platform)
	}
}

func validateTransport(transport string) error {
	if transport != "telnet" && transport != "ssh" {
		return fmt.Errorf("transport %s is invalid, must be 'telnet' or 'ssh'", transport)
	}
	return nil
}

func validateState(state entities.ReconcileState) error {
	if state != entities.StateMerged && state != entities.StateDeleted {
		return fmt.Errorf("state %s is invalid, must be 'merged' or 'deleted'", state)
	}
	return nil
}

// Load loads and validates configuration from a YAML file. The execute flag
// maps onto per-device sandbox mode; rawIO mirrors transport chatter to
// stdout for troubleshooting.
func Load(yamlFile string, execute, rawIO bool) (*Config, error) {
	data, err := os.ReadFile(yamlFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file %s: %v", yamlFile, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %v", err)
	}

	cfg.Platform = strings.ToLower(strings.TrimSpace(cfg.Platform))
	if cfg.Platform == "" {
		cfg.Platform = "auto"
	}
	if err := validatePlatform(cfg.Platform); err != nil {
		return nil, err
	}

	cfg.Transport = strings.ToLower(strings.TrimSpace(cfg.Transport))
	if cfg.Transport == "" {
		cfg.Transport = "telnet"
	}
	if err := validateTransport(cfg.Transport); err != nil {
		return nil, err
	}

	if cfg.State == "" {
		cfg.State = entities.StateMerged
	}
	if err := validateState(cfg.State); err != nil {
		return nil, err
	}

	for i, dev := range cfg.Devices {
		if dev.Target == "" {
			return nil, fmt.Errorf("target is required for device %d", i)
		}

		dev.Transport = strings.ToLower(strings.TrimSpace(dev.Transport))
		if dev.Transport == "" {
			dev.Transport = cfg.Transport
		}
		if err := validateTransport(dev.Transport); err != nil {
			return nil, fmt.Errorf("device %s: %w", dev.Target, err)
		}

		dev.Platform = strings.ToLower(strings.TrimSpace(dev.Platform))
		if dev.Platform == "" {
			dev.Platform = cfg.Platform
		}
		if err := validatePlatform(dev.Platform); err != nil {
			return nil, fmt.Errorf("device %s: %w", dev.Target, err)
		}

		if dev.Username == "" {
			dev.Username = cfg.Username
		}
		if dev.Password == "" {
			dev.Password = cfg.Password
		}
		if dev.Username == "" {
			return nil, fmt.Errorf("username is required for device %s", dev.Target)
		}
		if dev.SnmpCommunity == "" {
			dev.SnmpCommunity = cfg.SnmpCommunity
		}

		if dev.State == "" {
			dev.State = cfg.State
		}
		if err := validateState(dev.State); err != nil {
			return nil, fmt.Errorf("device %s: %w", dev.Target, err)
		}

		if err := validateDeclaredVlans(dev); err != nil {
			return nil, fmt.Errorf("device %s: %w", dev.Target, err)
		}

		dev.Sandbox = !execute
		dev.RawIO = rawIO
		cfg.Devices[i] = dev
	}

	if len(cfg.Devices) == 0 {
		return nil, fmt.Errorf("no devices defined in the YAML configuration")
	}

	return &cfg, nil
}

// Device finds a device configuration by target address.
func (c *Config) Device(target string) (*entities.DeviceConfig, error) {
	for i := range c.Devices {
		if c.Devices[i].Target == target {
			return &c.Devices[i], nil
		}
	}
	return nil, fmt.Errorf("device %s not found in configuration", target)
}

// validateDeclaredVlans rejects malformed declarations at load time so a
// run never fails halfway through a device list.
func validateDeclaredVlans(dev entities.DeviceConfig) error {
	seen := make(map[int]bool, len(dev.Vlans))
	for _, spec := range dev.Vlans {
		if err := spec.Validate(); err != nil {
			return err
		}
		if seen[spec.ID] {
			return fmt.Errorf("vlan %d is declared more than once", spec.ID)
		}
		seen[spec.ID] = true
	}
	for _, binding := range dev.Bindings() {
		if err := binding.Validate(); err != nil {
			return err
		}
	}
	return nil
}
