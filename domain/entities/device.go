package entities

// InterfacePolicy declares which VLANs an interface participates in
type InterfacePolicy struct {
	Name  string        `yaml:"name"`
	Vlans []VlanBinding `yaml:"vlans"`
}

// VlanBinding is the per-interface half of an InterfaceVlanBinding as it
// appears in the declared configuration
type VlanBinding struct {
	VlanID int         `yaml:"vlan_id"`
	Mode   TaggingMode `yaml:"mode"`
}

// DeviceConfig defines the declared configuration for a single switch
type DeviceConfig struct {
	Target        string            `yaml:"target"`
	Platform      string            `yaml:"platform"`
	Transport     string            `yaml:"transport"`
	Username      string            `yaml:"username"`
	Password      string            `yaml:"password"`
	SnmpCommunity string            `yaml:"snmp_community"`
	State         ReconcileState    `yaml:"state"`
	Vlans         []VlanSpec        `yaml:"vlans"`
	Interfaces    []InterfacePolicy `yaml:"interfaces"`

	Sandbox bool `yaml:"-"`
	RawIO   bool `yaml:"-"`
}

// Bindings flattens the declared interface policies, preserving the
// per-interface grouping order and the per-VLAN order as declared
func (dc DeviceConfig) Bindings() []InterfaceVlanBinding {
	var out []InterfaceVlanBinding
	for _, ifc := range dc.Interfaces {
		for _, b := range ifc.Vlans {
			out = append(out, InterfaceVlanBinding{
				Interface: ifc.Name,
				VlanID:    b.VlanID,
				Mode:      b.Mode,
			})
		}
	}
	return out
}
