// Package orgregistry implements the organization registry collaborator:
// a boolean membership check over known organization ids.
package orgregistry

import (
	"context"
	"sync"

	id "ticketledger/pkg/domain"
)

// InMemory answers membership queries from a set seeded at construction.
type InMemory struct {
	mu   sync.RWMutex
	orgs map[id.OrgID]struct{}
}

func NewInMemory(orgIDs ...id.OrgID) *InMemory {
	r := &InMemory{orgs: make(map[id.OrgID]struct{}, len(orgIDs))}
	for _, orgID := range orgIDs {
		r.orgs[orgID] = struct{}{}
	}
	return r
}

// Register adds an organization to the registry.
func (r *InMemory) Register(orgID id.OrgID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orgs[orgID] = struct{}{}
}

func (r *InMemory) IsValidOrg(_ context.Context, orgID id.OrgID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.orgs[orgID]
	return ok, nil
}
