// Package nftregistry implements the external token registry collaborator.
// The engine notifies it once per successful purchase; within the purchase
// flow the notification is fire-and-forget.
package nftregistry

import (
	"context"
	"sync"

	"ticketledger/internal/ticketing/models"
)

// InMemory records mint notifications in order. Backs tests and the
// single-process deployment.
type InMemory struct {
	mu    sync.RWMutex
	mints []models.NFTMint
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (r *InMemory) Mint(_ context.Context, mint models.NFTMint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mints = append(r.mints, mint)
	return nil
}

// Mints returns the recorded notifications in mint order.
func (r *InMemory) Mints() []models.NFTMint {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.NFTMint{}, r.mints...)
}
