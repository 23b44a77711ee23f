package models

import (
	id "ticketledger/pkg/domain"
)

// Defaults for a freshly bootstrapped ledger, matching the reference
// deployment.
const (
	DefaultPlatformFee        int64 = 1000
	DefaultDiscountRate       int64 = 10
	DefaultMaxTicketsPerEvent int64 = 1000
)

// LedgerConfig is the process-wide configuration aggregate. It is owned by
// the ticketing service, mutated only through owner-gated setters, and read
// by the purchase engine inside its transaction boundary; it must never be
// shared as ambient global state.
type LedgerConfig struct {
	TicketCounter      id.TicketID
	PlatformFee        int64
	EscrowPrincipal    id.Principal
	DiscountRate       int64
	MaxTicketsPerEvent int64
}

// NewLedgerConfig returns the bootstrap configuration.
func NewLedgerConfig() *LedgerConfig {
	return &LedgerConfig{
		TicketCounter:      0,
		PlatformFee:        DefaultPlatformFee,
		EscrowPrincipal:    "",
		DiscountRate:       DefaultDiscountRate,
		MaxTicketsPerEvent: DefaultMaxTicketsPerEvent,
	}
}

// EscrowConfigured reports whether purchases may proceed.
func (c *LedgerConfig) EscrowConfigured() bool {
	return !c.EscrowPrincipal.IsNil()
}

// AllocateTicketID returns the id the next mint will receive. The counter
// does not move until CommitTicketID, so a failed purchase never skips an id.
// Both calls must happen inside the engine's transaction boundary.
func (c *LedgerConfig) AllocateTicketID() id.TicketID {
	return c.TicketCounter
}

// CommitTicketID advances the counter after a mint commits.
func (c *LedgerConfig) CommitTicketID() {
	c.TicketCounter++
}

// SetPlatformFee validates and applies a new fee.
func (c *LedgerConfig) SetPlatformFee(fee int64) error {
	if fee < 0 {
		return NewLedgerError(FailureInvalidFee, "platform fee cannot be negative")
	}
	c.PlatformFee = fee
	return nil
}

// SetDiscountRate validates and applies a new discount rate. Rates above 100
// are rejected; negative rates pass, preserving the source validation exactly
// (see the purchase tests that pin this behavior).
func (c *LedgerConfig) SetDiscountRate(rate int64) error {
	if rate > 100 {
		return NewLedgerError(FailureInvalidDiscount, "discount rate cannot exceed 100")
	}
	c.DiscountRate = rate
	return nil
}

// Quote is the deterministic price computation for one ticket.
type Quote struct {
	Discount        int64 `json:"discount"`
	DiscountedPrice int64 `json:"discounted_price"`
	PlatformFee     int64 `json:"platform_fee"`
	TotalPrice      int64 `json:"total_price"`
}

// QuoteFor computes the discounted price with integer (truncating) division:
// floor(price * (100 - discount) / 100), plus the platform fee.
func (c *LedgerConfig) QuoteFor(ticketPrice int64, applyDiscount bool) Quote {
	var discount int64
	if applyDiscount {
		discount = c.DiscountRate
	}
	discounted := ticketPrice * (100 - discount) / 100
	return Quote{
		Discount:        discount,
		DiscountedPrice: discounted,
		PlatformFee:     c.PlatformFee,
		TotalPrice:      discounted + c.PlatformFee,
	}
}
