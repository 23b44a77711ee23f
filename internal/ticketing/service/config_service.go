package service

import (
	"context"

	"ticketledger/internal/audit"
	"ticketledger/internal/ticketing/models"
	id "ticketledger/pkg/domain"
)

// Owner-gated configuration setters. The authorization check runs before any
// validation so a non-owner learns nothing about parameter validity.

func (s *Service) requireOwner(ctx context.Context) (id.Principal, error) {
	p, err := caller(ctx)
	if err != nil {
		return "", err
	}
	if p != s.owner {
		return "", models.NewLedgerError(models.FailureNotAuthorized, "only the ledger owner may change configuration")
	}
	return p, nil
}

// SetEscrowPrincipal designates the account that receives sale proceeds.
// Must be called before any purchase can succeed.
func (s *Service) SetEscrowPrincipal(ctx context.Context, escrow id.Principal) error {
	actor, err := s.requireOwner(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cfg.EscrowPrincipal = escrow
	s.mu.Unlock()

	s.emitAudit(ctx, audit.Event{
		Action: audit.ActionConfigChanged,
		Actor:  actor,
		To:     escrow,
		Detail: "escrow_principal",
	})
	return nil
}

// SetPlatformFee updates the per-purchase fee paid to the owner.
func (s *Service) SetPlatformFee(ctx context.Context, fee int64) error {
	actor, err := s.requireOwner(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	err = s.cfg.SetPlatformFee(fee)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.emitAudit(ctx, audit.Event{
		Action: audit.ActionConfigChanged,
		Actor:  actor,
		Amount: fee,
		Detail: "platform_fee",
	})
	return nil
}

// SetDiscountRate updates the opt-in discount percentage.
func (s *Service) SetDiscountRate(ctx context.Context, rate int64) error {
	actor, err := s.requireOwner(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	err = s.cfg.SetDiscountRate(rate)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.emitAudit(ctx, audit.Event{
		Action: audit.ActionConfigChanged,
		Actor:  actor,
		Amount: rate,
		Detail: "discount_rate",
	})
	return nil
}

// PlatformFee returns the current per-purchase fee. No authorization
// required.
func (s *Service) PlatformFee(ctx context.Context) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.PlatformFee
}

// DiscountRate returns the current discount percentage. No authorization
// required.
func (s *Service) DiscountRate(ctx context.Context) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.DiscountRate
}

// TicketCount returns the number of tickets ever minted, which equals the
// next ticket id.
func (s *Service) TicketCount(ctx context.Context) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(s.cfg.TicketCounter)
}
