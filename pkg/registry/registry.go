// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"funnel-workers/internal/common/validation"
)

// LoadRegistry reads and validates a funnel registry file.
func LoadRegistry(path string) (*FunnelRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg FunnelRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Validate checks structural invariants of the registry.
func (r *FunnelRegistry) Validate() error {
	seen := make(map[string]struct{}, len(r.Funnels))
	for _, f := range r.Funnels {
		if f.ID == "" {
			return fmt.Errorf("funnel with empty id")
		}
		if err := validation.ValidateFunnelNaming(f.ID); err != nil {
			return err
		}
		if _, dup := seen[f.ID]; dup {
			return fmt.Errorf("duplicate funnel id %q", f.ID)
		}
		seen[f.ID] = struct{}{}
		if f.VSLVariant == "" {
			return fmt.Errorf("funnel %q missing vslVariant", f.ID)
		}
		if f.CheckoutProductID == "" {
			return fmt.Errorf("funnel %q missing checkoutProductId", f.ID)
		}
	}
	return nil
}

// FindFunnel returns the funnel with the given id, or false.
func (r *FunnelRegistry) FindFunnel(id string) (*Funnel, bool) {
	for i := range r.Funnels {
		if r.Funnels[i].ID == id {
			return &r.Funnels[i], true
		}
	}
	return nil, false
}

// FunnelIDs returns all funnel ids in registry order.
func (r *FunnelRegistry) FunnelIDs() []string {
	ids := make([]string, len(r.Funnels))
	for i, f := range r.Funnels {
		ids[i] = f.ID
	}
	return ids
}
