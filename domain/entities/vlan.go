package entities

import "fmt"

// VLAN identifiers live in the 802.1Q range.
const (
	MinVlanID = 1
	MaxVlanID = 4094
)

// TaggingMode says whether frames for a VLAN leave an interface tagged
type TaggingMode string

const (
	Tagged   TaggingMode = "tagged"
	Untagged TaggingMode = "untagged"
)

// ReconcileState declares the intent for the listed VLANs
type ReconcileState string

const (
	StateMerged  ReconcileState = "merged"
	StateDeleted ReconcileState = "deleted"
)

// VlanSpec is a declared or observed VLAN
type VlanSpec struct {
	ID   int    `yaml:"vlan_id"`
	Name string `yaml:"name,omitempty"`
}

// Validate checks the VLAN identifier range
func (v VlanSpec) Validate() error {
	if v.ID < MinVlanID || v.ID > MaxVlanID {
		return &ValidationError{
			Field:  "vlan_id",
			Detail: fmt.Sprintf("%d is out of range %d-%d", v.ID, MinVlanID, MaxVlanID),
		}
	}
	return nil
}

// InterfaceVlanBinding ties an interface to a VLAN with a tagging mode.
// At most one mode may exist per (interface, vlan_id) pair.
type InterfaceVlanBinding struct {
	Interface string      `yaml:"interface"`
	VlanID    int         `yaml:"vlan_id"`
	Mode      TaggingMode `yaml:"mode"`
}

// Validate checks the VLAN range and the tagging mode
func (b InterfaceVlanBinding) Validate() error {
	if b.Interface == "" {
		return &ValidationError{Field: "interface", Detail: "interface name is required"}
	}
	if b.VlanID < MinVlanID || b.VlanID > MaxVlanID {
		return &ValidationError{
			Field:  "vlan_id",
			Detail: fmt.Sprintf("%d is out of range %d-%d on interface %s", b.VlanID, MinVlanID, MaxVlanID, b.Interface),
		}
	}
	switch b.Mode {
	case Tagged, Untagged:
		return nil
	default:
		return &ValidationError{
			Field:  "mode",
			Detail: fmt.Sprintf("%q is not a tagging mode, must be %q or %q", b.Mode, Tagged, Untagged),
		}
	}
}

// VlanFacts is the VLAN state observed on a device
type VlanFacts struct {
	Vlans       []VlanSpec             `yaml:"vlans"`
	Memberships []InterfaceVlanBinding `yaml:"memberships,omitempty"`
}

// HasVlan reports whether the facts contain the given VLAN identifier
func (f VlanFacts) HasVlan(id int) bool {
	for _, v := range f.Vlans {
		if v.ID == id {
			return true
		}
	}
	return false
}

// VlanName returns the observed name for a VLAN, empty when unnamed or absent
func (f VlanFacts) VlanName(id int) string {
	for _, v := range f.Vlans {
		if v.ID == id {
			return v.Name
		}
	}
	return ""
}
