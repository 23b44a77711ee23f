package service

import (
	"context"
	"errors"
	"time"

	"ticketledger/internal/audit"
	"ticketledger/internal/ticketing/models"
	"ticketledger/internal/ticketing/ports"
	id "ticketledger/pkg/domain"
	dErrors "ticketledger/pkg/domain-errors"
	"ticketledger/pkg/platform/sentinel"
)

// BuyTicket purchases one ticket for the caller. Preconditions are checked
// in a fixed order and the first failure wins; a failed purchase leaves the
// ticket counter, balances, availability, and the transfer and mint logs
// untouched.
//
// Funds movement is a single debit of the full total against the balance
// ledger. The two transfer records on the receipt (escrow leg, fee leg) are
// settlement accounting for the audit log, never additional debits.
func (s *Service) BuyTicket(ctx context.Context, orgID id.OrgID, eventID id.EventID, applyDiscount bool) (*models.PurchaseReceipt, error) {
	buyer, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		receipt *models.PurchaseReceipt
		ticket  *models.Ticket
	)
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if !s.cfg.EscrowConfigured() {
			return models.NewLedgerError(models.FailureEscrowNotSet, "escrow principal is not configured")
		}

		validOrg, err := s.orgs.IsValidOrg(ctx, orgID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to query org registry")
		}
		if !validOrg {
			return models.NewLedgerError(models.FailureInvalidOrg, "organization is not registered")
		}

		event, err := s.events.FindByID(ctx, eventID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return models.NewLedgerError(models.FailureInvalidEvent, "event does not exist")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load event")
		}
		if !event.Sellable() {
			return models.NewLedgerError(models.FailureInvalidEvent, "event is not selling tickets")
		}
		// Defensive re-check: creation already rejects non-positive prices.
		if event.TicketPrice <= 0 {
			return models.NewLedgerError(models.FailureInvalidAmount, "event has a non-positive ticket price")
		}

		quote := s.cfg.QuoteFor(event.TicketPrice, applyDiscount)

		balance, err := s.balances.Balance(ctx, buyer)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read buyer balance")
		}
		if balance < quote.TotalPrice {
			return models.NewLedgerError(models.FailureInsufficientFunds, "balance does not cover the total price")
		}

		// Single atomic deduction covering both settlement legs.
		if err := s.balances.Debit(ctx, buyer, quote.TotalPrice); err != nil {
			if errors.Is(err, ports.ErrInsufficientFunds) {
				return models.NewLedgerError(models.FailureInsufficientFunds, "balance does not cover the total price")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to debit buyer")
		}

		ticketID := s.cfg.AllocateTicketID()
		height := s.height(ctx)
		transfers := []models.TransferRecord{
			{Amount: quote.DiscountedPrice, From: buyer, To: s.cfg.EscrowPrincipal},
			{Amount: quote.PlatformFee, From: buyer, To: s.owner},
		}
		ticket = models.NewTicket(ticketID, buyer, orgID, eventID, quote.DiscountedPrice, height, applyDiscount)

		if err := s.commitPurchase(ctx, ticket, event.ID); err != nil {
			// The debit already happened against the external ledger; hand
			// the funds back before surfacing the fault.
			if creditErr := s.balances.Credit(ctx, buyer, quote.TotalPrice); creditErr != nil && s.logger != nil {
				s.logger.ErrorContext(ctx, "refund after failed purchase commit",
					"buyer", buyer, "amount", quote.TotalPrice, "error", creditErr)
			}
			return err
		}
		s.cfg.CommitTicketID()

		for _, leg := range transfers {
			s.emitAudit(ctx, audit.Event{
				Action:   audit.ActionTransfer,
				Actor:    buyer,
				TicketID: ticketID.String(),
				EventID:  eventID.String(),
				Amount:   leg.Amount,
				From:     leg.From,
				To:       leg.To,
				Height:   height,
			})
		}
		s.emitAudit(ctx, audit.Event{
			Action:   audit.ActionTicketMinted,
			Actor:    buyer,
			TicketID: ticketID.String(),
			EventID:  eventID.String(),
			Amount:   quote.DiscountedPrice,
			Height:   height,
		})

		receipt = &models.PurchaseReceipt{
			TicketID:  ticketID,
			Quote:     quote,
			Transfers: transfers,
		}
		return nil
	})
	if err != nil {
		if s.metrics != nil {
			if code, ok := models.FailureOf(err); ok {
				s.metrics.IncrementPurchaseRejected(code)
			}
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementTicketsSold()
		s.metrics.AddRevenue(receipt.Quote.TotalPrice)
		s.metrics.ObservePurchase(start)
	}
	if err := s.nft.Mint(ctx, models.NFTMint{TicketID: ticket.ID, Buyer: ticket.Buyer, EventID: ticket.EventID}); err != nil && s.logger != nil {
		// Fire-and-forget: registry notification must not unwind a
		// committed purchase.
		s.logger.ErrorContext(ctx, "nft mint notification", "ticket_id", ticket.ID, "error", err)
	}
	return receipt, nil
}

// commitPurchase applies the two store mutations of a successful purchase:
// ticket insertion and availability decrement. Callers hold the engine lock.
func (s *Service) commitPurchase(ctx context.Context, ticket *models.Ticket, eventID id.EventID) error {
	if err := s.tickets.Mint(ctx, ticket); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to mint ticket")
	}

	_, err := s.events.Execute(ctx, eventID,
		func(e *models.Event) error {
			return e.CanSell()
		},
		func(e *models.Event) {
			e.ApplySale()
		},
	)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to decrement availability")
	}
	return nil
}
