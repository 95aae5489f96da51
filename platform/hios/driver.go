package hios

import (
	"fmt"
	"strings"

	"github.com/openrail/swctl/domain/entities"
	"github.com/openrail/swctl/domain/ports"
)

const driverName = "hios"

var detectKeywords = []string{"hirschmann", "hios", "bobcat", "bxp"}

var commandErrHints = []string{
	"invalid input",
	"unknown command",
	"incomplete command",
	"unrecognized command",
	"syntax error",
	"%% error",
}

// Driver implements SwitchDriver semantics for Hirschmann switches.
type Driver struct{}

// New creates a new Hirschmann driver instance.
func New() *Driver {
	return &Driver{}
}

// Name returns the canonical platform identifier.
func (d *Driver) Name() string {
	return driverName
}

// Detect inspects the device to determine whether it runs Hirschmann firmware.
func (d *Driver) Detect(repo ports.SwitchRepository) (bool, error) {
	if !repo.IsConnected() {
		if err := repo.Connect(); err != nil {
			return false, err
		}
	}
	output, err := repo.ExecuteCommand("show system info")
	if err != nil {
		return false, err
	}
	return d.MatchDescription(output), nil
}

// MatchDescription matches an SNMP sysDescr or banner against this platform.
func (d *Driver) MatchDescription(sysDescr string) bool {
	lower := strings.ToLower(sysDescr)
	for _, keyword := range detectKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// Prompt returns the privileged prompt terminator.
func (d *Driver) Prompt() string {
	return "#"
}

// LoginSequence returns the telnet login exchange.
func (d *Driver) LoginSequence(username, password string) []entities.AuthPrompt {
	return []entities.AuthPrompt{
		{WaitFor: "User:", SendCmd: username + "\n"},
		{WaitFor: "Password:", SendCmd: password + "\n", Secret: true},
	}
}

// SetupSequence elevates privileges and disables output paging.
func (d *Driver) SetupSequence() []entities.AuthPrompt {
	return []entities.AuthPrompt{
		{WaitFor: ">", SendCmd: "enable\n"},
		{WaitFor: "#", SendCmd: "cli numlines 0\n"},
		{WaitFor: "#", SendCmd: ""},
	}
}

// VlanFacts collects VLANs from the running configuration script and
// interface memberships from the VLAN member table.
func (d *Driver) VlanFacts(repo ports.SwitchRepository) (*entities.VlanFacts, error) {
	script, err := repo.ExecuteCommand("show running-config script")
	if err != nil {
		return nil, fmt.Errorf("failed to read running configuration: %w", err)
	}
	facts := &entities.VlanFacts{Vlans: parseVlanDatabase(script)}

	member, err := repo.ExecuteCommand("show vlan member current")
	if err != nil {
		return nil, fmt.Errorf("failed to read VLAN membership: %w", err)
	}
	bindings, err := parseMembershipMatrix(member)
	if err != nil {
		// Devices without the membership view still report VLANs.
		return facts, nil
	}
	facts.Memberships = bindings
	return facts, nil
}

// SystemInfo scrapes identity fields from "show system info".
func (d *Driver) SystemInfo(repo ports.SwitchRepository) (*entities.SystemInfo, error) {
	output, err := repo.ExecuteCommand("show system info")
	if err != nil {
		return nil, fmt.Errorf("failed to read system info: %w", err)
	}
	return parseSystemInfo(output), nil
}

// Neighbors lists LLDP neighbors from "show lldp remote-data".
func (d *Driver) Neighbors(repo ports.SwitchRepository) ([]entities.NeighborInfo, error) {
	output, err := repo.ExecuteCommand("show lldp remote-data")
	if err != nil {
		return nil, fmt.Errorf("failed to read LLDP remote data: %w", err)
	}
	return parseLLDPRemoteData(output), nil
}

// CreateVlanCommands adds a VLAN in the vlan database context.
func (d *Driver) CreateVlanCommands(spec entities.VlanSpec) []string {
	cmds := []string{
		"vlan database",
		fmt.Sprintf("vlan add %d", spec.ID),
	}
	if spec.Name != "" {
		cmds = append(cmds, fmt.Sprintf("name %d %s", spec.ID, spec.Name))
	}
	return append(cmds, "exit")
}

// RenameVlanCommands sets the name of an existing VLAN.
func (d *Driver) RenameVlanCommands(spec entities.VlanSpec) []string {
	return []string{
		"vlan database",
		fmt.Sprintf("name %d %s", spec.ID, spec.Name),
		"exit",
	}
}

// DeleteVlanCommands removes a VLAN from the database.
func (d *Driver) DeleteVlanCommands(vlanID int) []string {
	return []string{
		"vlan database",
		fmt.Sprintf("vlan delete %d", vlanID),
		"exit",
	}
}

// InterfaceVlanCommands enters the interface context and, per VLAN,
// includes participation followed by the tagging mode.
func (d *Driver) InterfaceVlanCommands(iface string, bindings []entities.InterfaceVlanBinding) []string {
	cmds := []string{
		"configure",
		fmt.Sprintf("interface %s", iface),
	}
	for _, b := range bindings {
		cmds = append(cmds, fmt.Sprintf("vlan participation include %d", b.VlanID))
		if b.Mode == entities.Tagged {
			cmds = append(cmds, fmt.Sprintf("vlan tagging %d", b.VlanID))
		} else {
			cmds = append(cmds, fmt.Sprintf("no vlan tagging %d", b.VlanID))
		}
	}
	return append(cmds, "exit", "exit")
}

// SaveCommands persists the running configuration to non-volatile memory.
func (d *Driver) SaveCommands() []string {
	return []string{"copy config running-config nvm"}
}

// IsCommandError reports whether output looks like a command rejection.
func (d *Driver) IsCommandError(output string) bool {
	lower := strings.ToLower(output)
	for _, keyword := range commandErrHints {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
