// Package balance implements the external balance ledger collaborator. The
// ticketing engine only ever issues a single debit per purchase; crediting
// exists for escrow release flows and test setup.
package balance

import (
	"context"
	"fmt"
	"sync"

	"ticketledger/internal/ticketing/ports"
	id "ticketledger/pkg/domain"
)

// InMemory holds per-principal balances behind a mutex. Debit is atomic:
// the check and the deduction happen under one lock.
type InMemory struct {
	mu       sync.RWMutex
	balances map[id.Principal]int64
}

func NewInMemory() *InMemory {
	return &InMemory{balances: make(map[id.Principal]int64)}
}

// Seed sets a principal's balance directly. Test and bootstrap helper.
func (l *InMemory) Seed(principal id.Principal, amount int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[principal] = amount
}

func (l *InMemory) Balance(_ context.Context, principal id.Principal) (int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[principal], nil
}

func (l *InMemory) Debit(_ context.Context, principal id.Principal, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("debit amount cannot be negative")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	current := l.balances[principal]
	if current < amount {
		return ports.ErrInsufficientFunds
	}
	l.balances[principal] = current - amount
	return nil
}

func (l *InMemory) Credit(_ context.Context, principal id.Principal, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("credit amount cannot be negative")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[principal] += amount
	return nil
}
