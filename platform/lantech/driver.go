package lantech

import (
	"fmt"
	"strings"

	"github.com/openrail/swctl/domain/entities"
	"github.com/openrail/swctl/domain/ports"
)

const driverName = "lantech"

// Driver implements SwitchDriver semantics for Lantech TPES switches.
// The platform exposes a flat command dialect behind a bare ">" prompt and
// rejects bad input with "Invalid parameter".
type Driver struct{}

// New creates a new Lantech driver.
func New() *Driver {
	return &Driver{}
}

// Name returns the canonical platform identifier.
func (d *Driver) Name() string {
	return driverName
}

// Detect determines if the connected device is a Lantech switch.
func (d *Driver) Detect(repo ports.SwitchRepository) (bool, error) {
	if !repo.IsConnected() {
		if err := repo.Connect(); err != nil {
			return false, err
		}
	}
	output, err := repo.ExecuteCommand("System Configuration")
	if err != nil {
		return false, err
	}
	return d.MatchDescription(output), nil
}

// MatchDescription matches an SNMP sysDescr or banner against this platform.
func (d *Driver) MatchDescription(sysDescr string) bool {
	lower := strings.ToLower(sysDescr)
	return strings.Contains(lower, "lantech") || strings.Contains(lower, "tpes")
}

// Prompt returns the command prompt terminator.
func (d *Driver) Prompt() string {
	return ">"
}

// LoginSequence returns the telnet login exchange.
func (d *Driver) LoginSequence(username, password string) []entities.AuthPrompt {
	return []entities.AuthPrompt{
		{WaitFor: "Username:", SendCmd: username + "\n"},
		{WaitFor: "Password:", SendCmd: password + "\n", Secret: true},
	}
}

// SetupSequence waits for the prompt; the platform has no privilege levels
// and no output paging.
func (d *Driver) SetupSequence() []entities.AuthPrompt {
	return []entities.AuthPrompt{
		{WaitFor: ">", SendCmd: ""},
	}
}

// VlanFacts collects the static VLAN table. The platform does not expose a
// per-interface membership view over the CLI, so memberships stay empty.
func (d *Driver) VlanFacts(repo ports.SwitchRepository) (*entities.VlanFacts, error) {
	output, err := repo.ExecuteCommand("VLAN Configuration")
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve VLAN table: %w", err)
	}
	return &entities.VlanFacts{Vlans: parseVlanTable(output)}, nil
}

// SystemInfo scrapes identity fields from "System Configuration".
func (d *Driver) SystemInfo(repo ports.SwitchRepository) (*entities.SystemInfo, error) {
	output, err := repo.ExecuteCommand("System Configuration")
	if err != nil {
		return nil, fmt.Errorf("failed to read system configuration: %w", err)
	}
	return parseSystemConfiguration(output), nil
}

// Neighbors is not supported on this platform.
func (d *Driver) Neighbors(repo ports.SwitchRepository) ([]entities.NeighborInfo, error) {
	return nil, nil
}

// CreateVlanCommands adds a VLAN with the flat dialect.
func (d *Driver) CreateVlanCommands(spec entities.VlanSpec) []string {
	if spec.Name != "" {
		return []string{fmt.Sprintf("vlan add %d name %s", spec.ID, spec.Name)}
	}
	return []string{fmt.Sprintf("vlan add %d", spec.ID)}
}

// RenameVlanCommands sets the name of an existing VLAN.
func (d *Driver) RenameVlanCommands(spec entities.VlanSpec) []string {
	return []string{fmt.Sprintf("vlan set %d name %s", spec.ID, spec.Name)}
}

// DeleteVlanCommands removes a VLAN.
func (d *Driver) DeleteVlanCommands(vlanID int) []string {
	return []string{fmt.Sprintf("vlan delete %d", vlanID)}
}

// InterfaceVlanCommands emits one membership statement per VLAN. The flat
// dialect has no interface context; grouping order is still preserved.
func (d *Driver) InterfaceVlanCommands(iface string, bindings []entities.InterfaceVlanBinding) []string {
	var cmds []string
	for _, b := range bindings {
		cmds = append(cmds, fmt.Sprintf("vlan port %s add %d %s", iface, b.VlanID, b.Mode))
	}
	return cmds
}

// SaveCommands persists the configuration.
func (d *Driver) SaveCommands() []string {
	return []string{"save configuration"}
}

// IsCommandError reports whether output looks like a command rejection.
func (d *Driver) IsCommandError(output string) bool {
	return strings.Contains(output, "Invalid parameter")
}
