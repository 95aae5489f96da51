package main

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"golang.org/x/term"

	"github.com/openrail/swctl/domain/entities"
	"github.com/openrail/swctl/infrastructure/config"
)

const defaultConfigName = "swctl.yaml"

// resolveConfigPath finds the configuration file: -c flag first, then the
// working directory, the user config dir, and /etc.
func resolveConfigPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}

	possiblePaths := []string{
		filepath.Join(".", defaultConfigName),
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		possiblePaths = append(possiblePaths, filepath.Join(userConfigDir, "swctl", defaultConfigName))
	}
	possiblePaths = append(possiblePaths, filepath.Join("/etc/swctl", defaultConfigName))

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no %s found in ./, ~/.config/swctl/, or /etc/swctl/ (use -c <file>)", defaultConfigName)
}

// loadConfig loads and validates the inventory, prompting once for a
// password when the file carries none.
func loadConfig() (*config.Config, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path, execute, rawIO)
	if err != nil {
		return nil, err
	}

	var prompted string
	for i := range cfg.Devices {
		if cfg.Devices[i].Password != "" {
			continue
		}
		if prompted == "" {
			prompted, err = promptPassword(cfg.Devices[i].Username)
			if err != nil {
				return nil, err
			}
		}
		cfg.Devices[i].Password = prompted
	}
	return cfg, nil
}

// selectDevices returns the devices a command should act on, honoring -t.
func selectDevices(cfg *config.Config) ([]entities.DeviceConfig, error) {
	if target == "" {
		return cfg.Devices, nil
	}
	dev, err := cfg.Device(target)
	if err != nil {
		return nil, err
	}
	return []entities.DeviceConfig{*dev}, nil
}

func promptPassword(username string) (string, error) {
	fmt.Fprintf(os.Stderr, "Password for %s: ", username)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %v", err)
	}
	return string(password), nil
}
