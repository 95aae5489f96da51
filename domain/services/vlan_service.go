package services

import (
	"fmt"

	"github.com/openrail/swctl/domain/entities"
	"github.com/openrail/swctl/domain/ports"
	"github.com/openrail/swctl/pkg/log"
	"github.com/openrail/swctl/platform"
)

// VlanServiceImpl reconciles a device's VLAN state against its declared
// configuration through a platform driver.
type VlanServiceImpl struct {
	switchRepo ports.SwitchRepository
	config     entities.DeviceConfig
	driver     platform.SwitchDriver
}

// NewVlanService creates a new instance of the VLAN reconciliation service
func NewVlanService(switchRepo ports.SwitchRepository, config entities.DeviceConfig, driver platform.SwitchDriver) *VlanServiceImpl {
	return &VlanServiceImpl{
		switchRepo: switchRepo,
		config:     config,
		driver:     driver,
	}
}

// Facts connects to the device and collects its observed VLAN state.
func (v *VlanServiceImpl) Facts() (*entities.VlanFacts, error) {
	if err := v.ensureConnected(); err != nil {
		return nil, err
	}
	return v.driver.VlanFacts(v.switchRepo)
}

// RenderPlan renders the full command sequence for the declared
// configuration without opening a device session. Merged intent renders
// against a device holding no VLANs; deleted intent assumes every declared
// VLAN exists so the removals are visible.
func (v *VlanServiceImpl) RenderPlan() ([]string, error) {
	state := v.intent()
	var facts entities.VlanFacts
	if state == entities.StateDeleted {
		facts.Vlans = v.config.Vlans
	}
	plan, err := BuildPlan(v.config.Vlans, v.config.Bindings(), facts, state)
	if err != nil {
		return nil, err
	}
	return v.renderPlan(plan), nil
}

// Reconcile computes the minimal change plan and applies it to the device.
// Commands run in order; the first rejected command aborts the remainder,
// leaving prior changes in place.
func (v *VlanServiceImpl) Reconcile() error {
	logger := log.WithOperation(v.config.Target, "reconcile")

	plan, err := v.buildPlan()
	if err != nil {
		return err
	}
	if plan.Empty() {
		logger.Info("No changes required")
		return nil
	}

	commands := v.renderPlan(plan)
	if v.config.Sandbox {
		fmt.Printf("SANDBOX: Simulating %d commands on %s (use -x to apply)\n", len(commands), v.config.Target)
		for _, cmd := range commands {
			fmt.Printf("  %s\n", cmd)
		}
		return nil
	}

	for _, cmd := range commands {
		logger.Debugf("Executing %q", cmd)
		output, err := v.switchRepo.ExecuteCommand(cmd)
		if err != nil {
			return &entities.ConnectionError{Target: v.config.Target, Err: err}
		}
		if v.driver.IsCommandError(output) {
			return &entities.CommandError{Target: v.config.Target, Command: cmd, Output: output}
		}
	}
	logger.Infof("Applied %d commands", len(commands))

	v.saveConfiguration()
	return nil
}

func (v *VlanServiceImpl) buildPlan() (Plan, error) {
	if err := v.ensureConnected(); err != nil {
		return Plan{}, err
	}

	facts, err := v.driver.VlanFacts(v.switchRepo)
	if err != nil {
		return Plan{}, err
	}

	return BuildPlan(v.config.Vlans, v.config.Bindings(), *facts, v.intent())
}

func (v *VlanServiceImpl) intent() entities.ReconcileState {
	if v.config.State == "" {
		return entities.StateMerged
	}
	return v.config.State
}

// renderPlan turns a plan into an ordered command list: VLAN creation first
// so bindings always reference existing VLANs, deletions last.
func (v *VlanServiceImpl) renderPlan(plan Plan) []string {
	var commands []string
	for _, spec := range plan.Create {
		commands = append(commands, v.driver.CreateVlanCommands(spec)...)
	}
	for _, spec := range plan.Rename {
		commands = append(commands, v.driver.RenameVlanCommands(spec)...)
	}
	for _, iface := range bindingInterfaces(plan.Bind) {
		commands = append(commands, v.driver.InterfaceVlanCommands(iface, bindingsFor(plan.Bind, iface))...)
	}
	for _, vlanID := range plan.Delete {
		commands = append(commands, v.driver.DeleteVlanCommands(vlanID)...)
	}
	return commands
}

func (v *VlanServiceImpl) ensureConnected() error {
	if v.switchRepo.IsConnected() {
		return nil
	}
	if err := v.switchRepo.Connect(); err != nil {
		return &entities.ConnectionError{Target: v.config.Target, Err: err}
	}
	return nil
}

func (v *VlanServiceImpl) saveConfiguration() {
	logger := log.WithDevice(v.config.Target)
	for _, cmd := range v.driver.SaveCommands() {
		output, err := v.switchRepo.ExecuteCommand(cmd)
		if err != nil || v.driver.IsCommandError(output) {
			logger.Warnf("Unable to persist configuration with %q; please save manually", cmd)
			continue
		}
		return
	}
}

// bindingInterfaces lists interfaces in first-appearance order.
func bindingInterfaces(bindings []entities.InterfaceVlanBinding) []string {
	seen := make(map[string]bool, len(bindings))
	var order []string
	for _, b := range bindings {
		if !seen[b.Interface] {
			seen[b.Interface] = true
			order = append(order, b.Interface)
		}
	}
	return order
}

func bindingsFor(bindings []entities.InterfaceVlanBinding, iface string) []entities.InterfaceVlanBinding {
	var out []entities.InterfaceVlanBinding
	for _, b := range bindings {
		if b.Interface == iface {
			out = append(out, b)
		}
	}
	return out
}
