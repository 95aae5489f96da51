package services

import (
	"fmt"
	"sort"

	"github.com/openrail/swctl/domain/entities"
)

// Plan is the minimal set of changes that moves a device from its observed
// VLAN state to the declared one under a given intent.
type Plan struct {
	Create []entities.VlanSpec
	Rename []entities.VlanSpec
	Delete []int
	Bind   []entities.InterfaceVlanBinding
}

// Empty reports whether the plan requires no device changes
func (p Plan) Empty() bool {
	return len(p.Create) == 0 && len(p.Rename) == 0 && len(p.Delete) == 0 && len(p.Bind) == 0
}

// BuildPlan diffs declared configuration against observed facts.
//
// merged ensures the listed VLANs exist with the declared attributes and
// never touches VLANs absent from the declared list. deleted removes exactly
// the listed vlan_ids regardless of their current attributes.
func BuildPlan(declared []entities.VlanSpec, bindings []entities.InterfaceVlanBinding, observed entities.VlanFacts, state entities.ReconcileState) (Plan, error) {
	var plan Plan

	if err := validateDeclared(declared, bindings); err != nil {
		return plan, err
	}

	switch state {
	case entities.StateMerged:
		for _, spec := range declared {
			if !observed.HasVlan(spec.ID) {
				plan.Create = append(plan.Create, spec)
				continue
			}
			if spec.Name != "" && observed.VlanName(spec.ID) != spec.Name {
				plan.Rename = append(plan.Rename, spec)
			}
		}
		plan.Bind = diffBindings(bindings, observed.Memberships)
	case entities.StateDeleted:
		for _, spec := range declared {
			if observed.HasVlan(spec.ID) {
				plan.Delete = append(plan.Delete, spec.ID)
			}
		}
		sort.Ints(plan.Delete)
	default:
		return plan, &entities.ValidationError{
			Field:  "state",
			Detail: fmt.Sprintf("%q is not a reconcile state, must be %q or %q", state, entities.StateMerged, entities.StateDeleted),
		}
	}

	return plan, nil
}

// validateDeclared rejects malformed input before anything is rendered
func validateDeclared(declared []entities.VlanSpec, bindings []entities.InterfaceVlanBinding) error {
	seen := make(map[int]bool, len(declared))
	for _, spec := range declared {
		if err := spec.Validate(); err != nil {
			return err
		}
		if seen[spec.ID] {
			return &entities.ValidationError{
				Field:  "vlan_id",
				Detail: fmt.Sprintf("vlan %d is declared more than once", spec.ID),
			}
		}
		seen[spec.ID] = true
	}

	// An interface may carry a VLAN in exactly one tagging mode.
	modes := make(map[string]entities.TaggingMode, len(bindings))
	for _, b := range bindings {
		if err := b.Validate(); err != nil {
			return err
		}
		key := fmt.Sprintf("%s/%d", b.Interface, b.VlanID)
		if prev, ok := modes[key]; ok && prev != b.Mode {
			return &entities.ValidationError{
				Field:  "mode",
				Detail: fmt.Sprintf("interface %s declares vlan %d both %s and %s", b.Interface, b.VlanID, prev, b.Mode),
			}
		}
		modes[key] = b.Mode
	}
	return nil
}

// diffBindings keeps declared bindings that the device does not already
// report with the same mode, preserving declared order. Re-applying an
// already-satisfied binding is a no-op by construction.
func diffBindings(declared, observed []entities.InterfaceVlanBinding) []entities.InterfaceVlanBinding {
	current := make(map[string]entities.TaggingMode, len(observed))
	for _, b := range observed {
		current[fmt.Sprintf("%s/%d", b.Interface, b.VlanID)] = b.Mode
	}

	var missing []entities.InterfaceVlanBinding
	seen := make(map[string]bool, len(declared))
	for _, b := range declared {
		key := fmt.Sprintf("%s/%d", b.Interface, b.VlanID)
		if seen[key] {
			continue
		}
		seen[key] = true
		if mode, ok := current[key]; ok && mode == b.Mode {
			continue
		}
		missing = append(missing, b)
	}
	return missing
}
