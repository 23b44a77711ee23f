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

// RedeemTicket checks a ticket in. Only the organizer of the ticket's event
// may redeem, and each ticket redeems exactly once; no funds move. The
// precondition order is part of the wire contract: unknown ticket, then
// unresolvable event, then wrong caller, then double redemption.
func (s *Service) RedeemTicket(ctx context.Context, ticketID id.TicketID) (*models.Ticket, error) {
	redeemer, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var redeemed *models.Ticket
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		ticket, err := s.tickets.FindByID(ctx, ticketID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return models.NewLedgerError(models.FailureTicketNotFound, "ticket does not exist")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load ticket")
		}

		// Defensive: event references are immutable and events are never
		// deleted, so this should not fire.
		event, err := s.events.FindByID(ctx, ticket.EventID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return models.NewLedgerError(models.FailureInvalidEvent, "ticket references an unknown event")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load event")
		}

		if redeemer != event.Organizer {
			return models.NewLedgerError(models.FailureNotOrganizer, "only the event organizer may redeem tickets")
		}

		redeemed, err = s.tickets.Execute(ctx, ticketID,
			func(t *models.Ticket) error {
				return t.CanRedeem()
			},
			func(t *models.Ticket) {
				t.ApplyRedemption()
			},
		)
		if err != nil {
			if _, isLedger := models.FailureOf(err); isLedger {
				return err
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to redeem ticket")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitAudit(ctx, audit.Event{
		Action:   audit.ActionTicketRedeemed,
		Actor:    redeemer,
		TicketID: redeemed.ID.String(),
		EventID:  redeemed.EventID.String(),
	})
	if s.metrics != nil {
		s.metrics.IncrementTicketsRedeemed()
	}
	return redeemed, nil
}
