package event

import (
	"context"
	"sync"

	"ticketledger/internal/ticketing/models"
	id "ticketledger/pkg/domain"
	"ticketledger/pkg/platform/sentinel"
)

// InMemory keeps the event catalog in a map. It favors clarity over
// performance and backs the unit test suites.
type InMemory struct {
	mu     sync.RWMutex
	events map[id.EventID]*models.Event
}

func NewInMemory() *InMemory {
	return &InMemory{events: make(map[id.EventID]*models.Event)}
}

func (s *InMemory) Create(_ context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.events[event.ID]; exists {
		return sentinel.ErrConflict
	}
	clone := *event
	s.events[event.ID] = &clone
	return nil
}

func (s *InMemory) FindByID(_ context.Context, eventID id.EventID) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	event, ok := s.events[eventID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *event
	return &clone, nil
}

// Execute holds the store lock across validation and mutation so concurrent
// sales of the same event cannot both pass the availability check.
func (s *InMemory) Execute(_ context.Context, eventID id.EventID, validate func(*models.Event) error, mutate func(*models.Event)) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[eventID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if validate != nil {
		if err := validate(event); err != nil {
			return nil, err
		}
	}
	if mutate != nil {
		mutate(event)
	}
	clone := *event
	return &clone, nil
}
