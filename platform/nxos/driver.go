package nxos

import (
	"fmt"
	"strings"

	"github.com/openrail/swctl/domain/entities"
	"github.com/openrail/swctl/domain/ports"
)

const driverName = "nxos"

var commandErrHints = []string{
	"invalid input",
	"invalid command",
	"incomplete command",
	"ambiguous command",
	"syntax error",
	"% invalid",
}

// Driver implements SwitchDriver semantics for Nexus-style switches.
type Driver struct{}

// New creates a new Nexus-style driver.
func New() *Driver {
	return &Driver{}
}

// Name returns the canonical platform identifier.
func (d *Driver) Name() string {
	return driverName
}

// Detect determines if the connected device runs a Nexus-style OS.
func (d *Driver) Detect(repo ports.SwitchRepository) (bool, error) {
	if !repo.IsConnected() {
		if err := repo.Connect(); err != nil {
			return false, err
		}
	}
	output, err := repo.ExecuteCommand("show version")
	if err != nil {
		return false, err
	}
	return d.MatchDescription(output), nil
}

// MatchDescription matches an SNMP sysDescr or banner against this platform.
func (d *Driver) MatchDescription(sysDescr string) bool {
	lower := strings.ToLower(sysDescr)
	return strings.Contains(lower, "nexus") || strings.Contains(lower, "nx-os")
}

// Prompt returns the privileged prompt terminator.
func (d *Driver) Prompt() string {
	return "#"
}

// LoginSequence returns the telnet login exchange.
func (d *Driver) LoginSequence(username, password string) []entities.AuthPrompt {
	return []entities.AuthPrompt{
		{WaitFor: "login:", SendCmd: username + "\n"},
		{WaitFor: "Password:", SendCmd: password + "\n", Secret: true},
	}
}

// SetupSequence disables output paging.
func (d *Driver) SetupSequence() []entities.AuthPrompt {
	return []entities.AuthPrompt{
		{WaitFor: "#", SendCmd: "terminal length 0\n"},
		{WaitFor: "#", SendCmd: ""},
	}
}

// VlanFacts collects VLANs and access members from "show vlan brief" and
// tagged members from the trunk allowed list.
func (d *Driver) VlanFacts(repo ports.SwitchRepository) (*entities.VlanFacts, error) {
	brief, err := repo.ExecuteCommand("show vlan brief")
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve VLAN list: %w", err)
	}
	vlans, untagged := parseVlanBrief(brief)
	facts := &entities.VlanFacts{Vlans: vlans, Memberships: untagged}

	trunk, err := repo.ExecuteCommand("show interfaces trunk")
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve trunk membership: %w", err)
	}
	facts.Memberships = append(facts.Memberships, parseTrunkAllowed(trunk)...)
	return facts, nil
}

// SystemInfo scrapes identity fields from "show version".
func (d *Driver) SystemInfo(repo ports.SwitchRepository) (*entities.SystemInfo, error) {
	output, err := repo.ExecuteCommand("show version")
	if err != nil {
		return nil, fmt.Errorf("failed to read version info: %w", err)
	}
	return parseShowVersion(output), nil
}

// Neighbors lists LLDP neighbors.
func (d *Driver) Neighbors(repo ports.SwitchRepository) ([]entities.NeighborInfo, error) {
	output, err := repo.ExecuteCommand("show lldp neighbors detail")
	if err != nil {
		return nil, fmt.Errorf("failed to read LLDP neighbors: %w", err)
	}
	return parseLLDPNeighborsDetail(output), nil
}

// CreateVlanCommands creates a VLAN in the configuration context.
func (d *Driver) CreateVlanCommands(spec entities.VlanSpec) []string {
	cmds := []string{
		"configure terminal",
		fmt.Sprintf("vlan %d", spec.ID),
	}
	if spec.Name != "" {
		cmds = append(cmds, fmt.Sprintf("name %s", spec.Name))
	}
	return append(cmds, "exit", "end")
}

// RenameVlanCommands sets the name of an existing VLAN.
func (d *Driver) RenameVlanCommands(spec entities.VlanSpec) []string {
	return []string{
		"configure terminal",
		fmt.Sprintf("vlan %d", spec.ID),
		fmt.Sprintf("name %s", spec.Name),
		"exit",
		"end",
	}
}

// DeleteVlanCommands removes a VLAN.
func (d *Driver) DeleteVlanCommands(vlanID int) []string {
	return []string{
		"configure terminal",
		fmt.Sprintf("no vlan %d", vlanID),
		"end",
	}
}

// InterfaceVlanCommands enters the interface context and emits switchport
// statements per VLAN in declared order.
func (d *Driver) InterfaceVlanCommands(iface string, bindings []entities.InterfaceVlanBinding) []string {
	cmds := []string{
		"configure terminal",
		fmt.Sprintf("interface %s", iface),
	}
	for _, b := range bindings {
		if b.Mode == entities.Tagged {
			cmds = append(cmds,
				"switchport mode trunk",
				fmt.Sprintf("switchport trunk allowed vlan add %d", b.VlanID),
			)
		} else {
			cmds = append(cmds,
				"switchport mode access",
				fmt.Sprintf("switchport access vlan %d", b.VlanID),
			)
		}
	}
	return append(cmds, "exit", "end")
}

// SaveCommands persists the running configuration.
func (d *Driver) SaveCommands() []string {
	return []string{"copy running-config startup-config"}
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
