package ports

import "github.com/openrail/swctl/domain/entities"

// VlanService drives VLAN reconciliation against a single device
type VlanService interface {
	Reconcile() error
	Facts() (*entities.VlanFacts, error)
	RenderPlan() ([]string, error)
}
