package service

import (
	"context"
	"errors"

	"ticketledger/internal/audit"
	"ticketledger/internal/ticketing/models"
	id "ticketledger/pkg/domain"
	dErrors "ticketledger/pkg/domain-errors"
	"ticketledger/pkg/platform/sentinel"
)

// CreateEvent registers a new event with the caller as organizer and the
// full supply available. Validation order is part of the wire contract:
// identifier shape, then amounts, then duplicate detection.
func (s *Service) CreateEvent(ctx context.Context, eventID id.EventID, ticketPrice, totalTickets int64) (*models.Event, error) {
	organizer, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var created *models.Event
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		event, err := models.NewEvent(eventID, organizer, ticketPrice, totalTickets, s.cfg.MaxTicketsPerEvent)
		if err != nil {
			return err
		}
		if err := s.events.Create(ctx, event); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				// The original ledger reuses its duplicate-key code here.
				return models.NewLedgerError(models.FailureTicketExists, "event already exists")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create event")
		}
		created = event
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitAudit(ctx, audit.Event{
		Action:  audit.ActionEventCreated,
		Actor:   organizer,
		EventID: created.ID.String(),
		Amount:  created.TicketPrice,
	})
	if s.metrics != nil {
		s.metrics.IncrementEventsCreated()
	}
	return created, nil
}

// GetEventDetails returns the event, or a not-found error. Read-only, no
// authorization required.
func (s *Service) GetEventDetails(ctx context.Context, eventID id.EventID) (*models.Event, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "event not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load event")
	}
	return event, nil
}

// GetTicket returns the ticket, or a not-found error. Read-only, no
// authorization required.
func (s *Service) GetTicket(ctx context.Context, ticketID id.TicketID) (*models.Ticket, error) {
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "ticket not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load ticket")
	}
	return ticket, nil
}
