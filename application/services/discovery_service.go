package services

import (
	"fmt"
	"time"

	"github.com/openrail/swctl/domain/entities"
	"github.com/openrail/swctl/infrastructure/config"
	"github.com/openrail/swctl/infrastructure/snmp"
	"github.com/openrail/swctl/pkg/log"
	"github.com/openrail/swctl/platform"
)

// DiscoveryService walks the network outward from the configured devices,
// following LLDP adjacencies to build a topology snapshot. Unreachable
// devices are recorded as warnings, not failures.
type DiscoveryService struct {
	config *config.Config

	// inspect and identify visit a single device; replaced in tests.
	inspect  func(dev entities.DeviceConfig) (*entities.SwitchInfo, error)
	identify func(dev entities.DeviceConfig) (*entities.SwitchInfo, error)
}

// NewDiscoveryService creates a discovery service seeded from a loaded
// configuration.
func NewDiscoveryService(cfg *config.Config) *DiscoveryService {
	d := &DiscoveryService{config: cfg}
	d.inspect = d.inspectDevice
	d.identify = d.snmpIdentity
	return d
}

// Discover performs a breadth-first walk over LLDP adjacencies starting
// from every configured device.
func (d *DiscoveryService) Discover() (*entities.Topology, error) {
	topology := entities.NewTopology()
	topology.DiscoveredAt = time.Now()

	var queue []entities.DeviceConfig
	queued := make(map[string]bool)
	for _, dev := range d.config.Devices {
		queue = append(queue, dev)
		queued[dev.Target] = true
	}

	for len(queue) > 0 {
		dev := queue[0]
		queue = queue[1:]

		if topology.Has(dev.Target) {
			continue
		}

		info, err := d.inspect(dev)
		if err != nil {
			snmpInfo, snmpErr := d.identify(dev)
			if snmpErr != nil {
				log.WithDevice(dev.Target).Warnf("Skipping unreachable device: %v", err)
				continue
			}
			log.WithDevice(dev.Target).Warnf("CLI session failed, keeping SNMP identity only: %v", err)
			topology.Add(*snmpInfo)
			continue
		}
		topology.Add(*info)

		for _, neighbor := range info.Neighbors {
			if neighbor.IP == "" || queued[neighbor.IP] {
				continue
			}
			queued[neighbor.IP] = true
			queue = append(queue, d.neighborConfig(neighbor))
		}
	}

	return topology, nil
}

func (d *DiscoveryService) inspectDevice(dev entities.DeviceConfig) (*entities.SwitchInfo, error) {
	app, err := NewVlanApplicationService(dev)
	if err != nil {
		return nil, err
	}

	sysInfo, err := app.SystemInfo()
	if err != nil {
		return nil, err
	}

	neighbors, err := app.Neighbors()
	if err != nil {
		log.WithDevice(dev.Target).Warnf("Failed to read neighbors: %v", err)
		neighbors = nil
	}

	return &entities.SwitchInfo{
		IP:        dev.Target,
		MAC:       sysInfo.ManagementMAC,
		Platform:  app.Platform(),
		Hostname:  sysInfo.Hostname,
		Neighbors: neighbors,
	}, nil
}

// snmpIdentity builds a minimal switch record over SNMP for devices that
// refuse a CLI session. Such switches appear in the topology with their
// sysName and detected platform but no neighbors.
func (d *DiscoveryService) snmpIdentity(dev entities.DeviceConfig) (*entities.SwitchInfo, error) {
	if dev.SnmpCommunity == "" {
		return nil, fmt.Errorf("no SNMP community configured for %s", dev.Target)
	}
	sysDescr, sysName, err := snmp.NewProbe(dev.SnmpCommunity).Identity(dev.Target)
	if err != nil {
		return nil, err
	}
	info := &entities.SwitchInfo{IP: dev.Target, Hostname: sysName}
	if driver, ok := platform.DetectFromDescription(sysDescr); ok {
		info.Platform = driver.Name()
	}
	return info, nil
}

// neighborConfig derives a device configuration for a switch that was
// found on the wire but is absent from the YAML, inheriting the global
// credentials.
func (d *DiscoveryService) neighborConfig(neighbor entities.NeighborInfo) entities.DeviceConfig {
	if dev, err := d.config.Device(neighbor.IP); err == nil {
		return *dev
	}
	return entities.DeviceConfig{
		Target:        neighbor.IP,
		Platform:      resolvePlatformName(neighbor.Platform),
		Transport:     d.config.Transport,
		Username:      d.config.Username,
		Password:      d.config.Password,
		SnmpCommunity: d.config.SnmpCommunity,
		State:         d.config.State,
		Sandbox:       true,
	}
}

// resolvePlatformName maps an LLDP vendor hint onto a registered driver
// name, falling back to auto-detection when nothing matches.
func resolvePlatformName(hint string) string {
	if hint == "" {
		return "auto"
	}
	if driver, err := platform.Get(hint); err == nil {
		return driver.Name()
	}
	if driver, ok := platform.DetectFromDescription(hint); ok {
		return driver.Name()
	}
	return "auto"
}
