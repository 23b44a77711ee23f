package ticket

import (
	"context"
	"sync"

	"ticketledger/internal/ticketing/models"
	id "ticketledger/pkg/domain"
	"ticketledger/pkg/platform/sentinel"
)

// InMemory keeps minted tickets in a map keyed by ticket id.
type InMemory struct {
	mu      sync.RWMutex
	tickets map[id.TicketID]*models.Ticket
}

func NewInMemory() *InMemory {
	return &InMemory{tickets: make(map[id.TicketID]*models.Ticket)}
}

func (s *InMemory) Mint(_ context.Context, ticket *models.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tickets[ticket.ID]; exists {
		// Ticket ids come from the ledger counter; a collision means the
		// counter was advanced outside the engine transaction.
		return sentinel.ErrConflict
	}
	clone := *ticket
	s.tickets[ticket.ID] = &clone
	return nil
}

func (s *InMemory) FindByID(_ context.Context, ticketID id.TicketID) (*models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ticket, ok := s.tickets[ticketID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *ticket
	return &clone, nil
}

// Execute holds the store lock across validation and mutation so two
// redemption attempts on the same ticket cannot both observe redeemed=false.
func (s *InMemory) Execute(_ context.Context, ticketID id.TicketID, validate func(*models.Ticket) error, mutate func(*models.Ticket)) (*models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket, ok := s.tickets[ticketID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if validate != nil {
		if err := validate(ticket); err != nil {
			return nil, err
		}
	}
	if mutate != nil {
		mutate(ticket)
	}
	clone := *ticket
	return &clone, nil
}
