package services

import (
	"errors"
	"testing"

	"github.com/openrail/swctl/domain/entities"
	"github.com/openrail/swctl/infrastructure/config"
)

func testDiscoveryConfig() *config.Config {
	return &config.Config{
		Transport:     "telnet",
		Username:      "admin",
		Password:      "secret",
		SnmpCommunity: "public",
		State:         entities.StateMerged,
		Devices: []entities.DeviceConfig{
			{Target: "10.0.0.1", Platform: "hios", Username: "admin", Password: "secret"},
		},
	}
}

func TestDiscoverWalksNeighbors(t *testing.T) {
	service := NewDiscoveryService(testDiscoveryConfig())

	infos := map[string]*entities.SwitchInfo{
		"10.0.0.1": {
			IP:       "10.0.0.1",
			Platform: "hios",
			Hostname: "core",
			Neighbors: []entities.NeighborInfo{
				{IP: "10.0.0.2", Platform: "nxos"},
				{IP: "10.0.0.3", Platform: "lantech"},
			},
		},
		"10.0.0.2": {
			IP:       "10.0.0.2",
			Platform: "nxos",
			Hostname: "dist",
			Neighbors: []entities.NeighborInfo{
				// Already visited; must not loop.
				{IP: "10.0.0.1", Platform: "hios"},
			},
		},
		"10.0.0.3": {
			IP:       "10.0.0.3",
			Platform: "lantech",
			Hostname: "edge",
		},
	}

	var visited []string
	service.inspect = func(dev entities.DeviceConfig) (*entities.SwitchInfo, error) {
		visited = append(visited, dev.Target)
		info, ok := infos[dev.Target]
		if !ok {
			return nil, errors.New("unknown device")
		}
		return info, nil
	}

	topology, err := service.Discover()
	if err != nil {
		t.Fatalf("Discover() returned error: %v", err)
	}

	if len(topology.Switches) != 3 {
		t.Fatalf("expected 3 discovered switches, got %d", len(topology.Switches))
	}
	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		if !topology.Has(ip) {
			t.Errorf("switch %s missing from topology", ip)
		}
	}
	if len(visited) != 3 {
		t.Errorf("each device must be inspected exactly once, got %v", visited)
	}
	if topology.DiscoveredAt.IsZero() {
		t.Error("DiscoveredAt not set")
	}
}

func TestDiscoverSkipsUnreachableDevices(t *testing.T) {
	service := NewDiscoveryService(testDiscoveryConfig())

	service.inspect = func(dev entities.DeviceConfig) (*entities.SwitchInfo, error) {
		if dev.Target == "10.0.0.1" {
			return &entities.SwitchInfo{
				IP:        "10.0.0.1",
				Platform:  "hios",
				Neighbors: []entities.NeighborInfo{{IP: "10.0.0.9"}},
			}, nil
		}
		return nil, errors.New("connection refused")
	}
	service.identify = func(dev entities.DeviceConfig) (*entities.SwitchInfo, error) {
		return nil, errors.New("no SNMP response")
	}

	topology, err := service.Discover()
	if err != nil {
		t.Fatalf("Discover() returned error: %v", err)
	}
	if len(topology.Switches) != 1 {
		t.Fatalf("expected 1 discovered switch, got %d", len(topology.Switches))
	}
	if topology.Has("10.0.0.9") {
		t.Error("unreachable device must not be in topology")
	}
}

func TestDiscoverKeepsSnmpIdentityWhenCliFails(t *testing.T) {
	service := NewDiscoveryService(testDiscoveryConfig())

	service.inspect = func(dev entities.DeviceConfig) (*entities.SwitchInfo, error) {
		if dev.Target == "10.0.0.1" {
			return &entities.SwitchInfo{
				IP:        "10.0.0.1",
				Platform:  "hios",
				Neighbors: []entities.NeighborInfo{{IP: "10.0.0.8"}},
			}, nil
		}
		return nil, errors.New("connection refused")
	}
	service.identify = func(dev entities.DeviceConfig) (*entities.SwitchInfo, error) {
		if dev.Target != "10.0.0.8" {
			return nil, errors.New("no SNMP response")
		}
		return &entities.SwitchInfo{IP: "10.0.0.8", Hostname: "edge-08", Platform: "lantech"}, nil
	}

	topology, err := service.Discover()
	if err != nil {
		t.Fatalf("Discover() returned error: %v", err)
	}
	if len(topology.Switches) != 2 {
		t.Fatalf("expected 2 discovered switches, got %d", len(topology.Switches))
	}
	sw, ok := topology.Switches["10.0.0.8"]
	if !ok {
		t.Fatal("SNMP-only device missing from topology")
	}
	if sw.Hostname != "edge-08" || sw.Platform != "lantech" {
		t.Errorf("unexpected SNMP identity: %+v", sw)
	}
	if len(sw.Neighbors) != 0 {
		t.Errorf("SNMP-only device must carry no neighbors, got %v", sw.Neighbors)
	}
}

func TestSnmpIdentityRequiresCommunity(t *testing.T) {
	service := NewDiscoveryService(testDiscoveryConfig())
	if _, err := service.snmpIdentity(entities.DeviceConfig{Target: "10.0.0.9"}); err == nil {
		t.Fatal("expected error when no SNMP community is configured")
	}
}

func TestNeighborConfigInheritsGlobals(t *testing.T) {
	service := NewDiscoveryService(testDiscoveryConfig())

	dev := service.neighborConfig(entities.NeighborInfo{IP: "10.0.0.4", Platform: "nxos"})
	if dev.Target != "10.0.0.4" {
		t.Errorf("unexpected target: %q", dev.Target)
	}
	if dev.Platform != "nxos" {
		t.Errorf("unexpected platform: %q", dev.Platform)
	}
	if dev.Username != "admin" || dev.Password != "secret" {
		t.Errorf("expected inherited credentials, got %q/%q", dev.Username, dev.Password)
	}
	if !dev.Sandbox {
		t.Error("discovered devices must stay in sandbox mode")
	}

	// Platform defaults to auto when LLDP gave no hint.
	dev = service.neighborConfig(entities.NeighborInfo{IP: "10.0.0.5"})
	if dev.Platform != "auto" {
		t.Errorf("expected auto platform, got %q", dev.Platform)
	}

	// Vendor keywords from LLDP map onto driver names.
	dev = service.neighborConfig(entities.NeighborInfo{IP: "10.0.0.6", Platform: "hirschmann"})
	if dev.Platform != "hios" {
		t.Errorf("expected hios for hirschmann hint, got %q", dev.Platform)
	}

	// Configured devices keep their own settings.
	dev = service.neighborConfig(entities.NeighborInfo{IP: "10.0.0.1"})
	if dev.Platform != "hios" {
		t.Errorf("expected configured platform, got %q", dev.Platform)
	}
}
