package platform

import (
	"fmt"
	"strings"

	"github.com/openrail/swctl/domain/entities"
	"github.com/openrail/swctl/domain/ports"
	"github.com/openrail/swctl/platform/hios"
	"github.com/openrail/swctl/platform/lantech"
	"github.com/openrail/swctl/platform/nxos"
)

// SwitchDriver defines the behaviour required to support a switching platform.
type SwitchDriver interface {
	Name() string

	// Detect inspects a connected device to decide whether this driver
	// speaks its dialect. MatchDescription does the same offline against
	// an SNMP sysDescr string.
	Detect(repo ports.SwitchRepository) (bool, error)
	MatchDescription(sysDescr string) bool

	// Prompt is the string that terminates command output on this platform.
	Prompt() string

	// LoginSequence returns the prompt exchange for transports that carry
	// the login in-band (telnet). SetupSequence runs after the shell is up
	// on any transport (privilege elevation, paging off).
	LoginSequence(username, password string) []entities.AuthPrompt
	SetupSequence() []entities.AuthPrompt

	VlanFacts(repo ports.SwitchRepository) (*entities.VlanFacts, error)
	SystemInfo(repo ports.SwitchRepository) (*entities.SystemInfo, error)
	Neighbors(repo ports.SwitchRepository) ([]entities.NeighborInfo, error)

	CreateVlanCommands(spec entities.VlanSpec) []string
	RenameVlanCommands(spec entities.VlanSpec) []string
	DeleteVlanCommands(vlanID int) []string
	InterfaceVlanCommands(iface string, bindings []entities.InterfaceVlanBinding) []string
	SaveCommands() []string

	// IsCommandError reports whether command output is a rejection.
	IsCommandError(output string) bool
}

var registry = []SwitchDriver{
	hios.New(),
	nxos.New(),
	lantech.New(),
}

// Get returns a driver by normalized platform name.
func Get(name string) (SwitchDriver, error) {
	normalized := normalizeName(name)
	for _, driver := range registry {
		if driver.Name() == normalized {
			return driver, nil
		}
	}
	return nil, fmt.Errorf("unknown switch platform: %s", name)
}

// Available returns all registered drivers.
func Available() []SwitchDriver {
	out := make([]SwitchDriver, len(registry))
	copy(out, registry)
	return out
}

// Detect tries all registered drivers until one matches.
func Detect(repo ports.SwitchRepository) (SwitchDriver, error) {
	var lastErr error
	for _, driver := range registry {
		matched, err := driver.Detect(repo)
		if err != nil {
			lastErr = err
			continue
		}
		if matched {
			return driver, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("unable to detect switch platform")
}

// DetectFromDescription matches an SNMP sysDescr against all drivers.
func DetectFromDescription(sysDescr string) (SwitchDriver, bool) {
	for _, driver := range registry {
		if driver.MatchDescription(sysDescr) {
			return driver, true
		}
	}
	return nil, false
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
