package services

import (
	"github.com/openrail/swctl/domain/entities"
	"github.com/openrail/swctl/domain/ports"
	"github.com/openrail/swctl/domain/services"
	"github.com/openrail/swctl/infrastructure/snmp"
	"github.com/openrail/swctl/infrastructure/transport"
	"github.com/openrail/swctl/pkg/log"
	"github.com/openrail/swctl/platform"
)

// VlanApplicationService wires a device configuration to a transport
// session, a platform driver and the reconciliation service.
type VlanApplicationService struct {
	config      entities.DeviceConfig
	driver      platform.SwitchDriver
	vlanService ports.VlanService
	switchRepo  ports.SwitchRepository
}

// NewVlanApplicationService creates the service for one device, resolving
// the platform driver and shaping the transport session for it.
func NewVlanApplicationService(cfg entities.DeviceConfig) (*VlanApplicationService, error) {
	client := transport.Get(cfg)
	adapter := transport.NewSwitchAdapter(client)

	driver, err := resolveDriver(cfg, adapter)
	if err != nil {
		return nil, err
	}

	if configurable, ok := client.(transport.Configurable); ok {
		configurable.SetPrompt(driver.Prompt())
		configurable.SetLoginSequence(driver.LoginSequence(cfg.Username, cfg.Password))
		configurable.SetSetupSequence(driver.SetupSequence())
	}

	return &VlanApplicationService{
		config:      cfg,
		driver:      driver,
		vlanService: services.NewVlanService(adapter, cfg, driver),
		switchRepo:  adapter,
	}, nil
}

// Platform returns the resolved driver name.
func (v *VlanApplicationService) Platform() string {
	return v.driver.Name()
}

// Reconcile applies the declared VLAN state to the device.
func (v *VlanApplicationService) Reconcile() error {
	return v.vlanService.Reconcile()
}

// RenderPlan returns the full command sequence for the declared
// configuration, rendered offline without a device session.
func (v *VlanApplicationService) RenderPlan() ([]string, error) {
	return v.vlanService.RenderPlan()
}

// Facts returns the device's observed VLAN state.
func (v *VlanApplicationService) Facts() (*entities.VlanFacts, error) {
	return v.vlanService.Facts()
}

// SystemInfo returns the device's identity.
func (v *VlanApplicationService) SystemInfo() (*entities.SystemInfo, error) {
	if err := v.connect(); err != nil {
		return nil, err
	}
	return v.driver.SystemInfo(v.switchRepo)
}

// Neighbors returns the device's LLDP neighbors.
func (v *VlanApplicationService) Neighbors() ([]entities.NeighborInfo, error) {
	if err := v.connect(); err != nil {
		return nil, err
	}
	return v.driver.Neighbors(v.switchRepo)
}

func (v *VlanApplicationService) connect() error {
	if v.switchRepo.IsConnected() {
		return nil
	}
	if err := v.switchRepo.Connect(); err != nil {
		return &entities.ConnectionError{Target: v.config.Target, Err: err}
	}
	return nil
}

// resolveDriver picks the platform driver for a device. A configured
// platform wins; otherwise an SNMP sysDescr probe decides without a CLI
// session, and a CLI banner sweep is the last resort.
func resolveDriver(cfg entities.DeviceConfig, repo ports.SwitchRepository) (platform.SwitchDriver, error) {
	if cfg.Platform != "" && cfg.Platform != "auto" {
		return platform.Get(cfg.Platform)
	}

	if cfg.SnmpCommunity != "" {
		probe := snmp.NewProbe(cfg.SnmpCommunity)
		sysDescr, err := probe.SysDescr(cfg.Target)
		if err != nil {
			log.WithDevice(cfg.Target).Warnf("SNMP probe failed, falling back to CLI detection: %v", err)
		} else if driver, ok := platform.DetectFromDescription(sysDescr); ok {
			log.WithDevice(cfg.Target).Debugf("Detected platform %s via SNMP", driver.Name())
			return driver, nil
		}
	}

	driver, err := platform.Detect(repo)
	if err != nil {
		return nil, &entities.ConnectionError{Target: cfg.Target, Err: err}
	}
	log.WithDevice(cfg.Target).Debugf("Detected platform %s via CLI", driver.Name())
	return driver, nil
}
