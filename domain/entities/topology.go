package entities

import "time"

// SystemInfo holds identity fields scraped from a device
type SystemInfo struct {
	Vendor        string `yaml:"vendor"`
	Hostname      string `yaml:"hostname,omitempty"`
	Model         string `yaml:"model,omitempty"`
	OSVersion     string `yaml:"os_version,omitempty"`
	SerialNumber  string `yaml:"serial_number,omitempty"`
	ManagementIP  string `yaml:"management_ip,omitempty"`
	ManagementMAC string `yaml:"management_mac,omitempty"`
	Description   string `yaml:"description,omitempty"`
}

// NeighborInfo is one LLDP neighbor as seen from a device
type NeighborInfo struct {
	IP       string `yaml:"ip,omitempty"`
	MAC      string `yaml:"mac,omitempty"`
	Platform string `yaml:"platform,omitempty"`
}

// SwitchInfo is one discovered switch and its neighbors
type SwitchInfo struct {
	IP        string         `yaml:"ip"`
	MAC       string         `yaml:"mac,omitempty"`
	Platform  string         `yaml:"platform,omitempty"`
	Hostname  string         `yaml:"hostname,omitempty"`
	Neighbors []NeighborInfo `yaml:"neighbors"`
}

// Topology is a snapshot of the discovered network keyed by management IP
type Topology struct {
	DiscoveredAt time.Time             `yaml:"discovered_at"`
	Switches     map[string]SwitchInfo `yaml:"switches"`
}

// NewTopology returns an empty topology snapshot
func NewTopology() *Topology {
	return &Topology{Switches: make(map[string]SwitchInfo)}
}

// Add records a discovered switch
func (t *Topology) Add(sw SwitchInfo) {
	t.Switches[sw.IP] = sw
}

// Has reports whether an IP was already visited
func (t *Topology) Has(ip string) bool {
	_, ok := t.Switches[ip]
	return ok
}
