package models

import (
	id "ticketledger/pkg/domain"
)

// Ticket records a completed purchase.
//
// Invariants:
//   - ID is assigned once from the ledger counter and never reused
//   - EventID references an event that existed when the ticket was minted
//   - Redeemed transitions false -> true exactly once; all other fields are
//     immutable after minting
type Ticket struct {
	ID              id.TicketID  `json:"id"`
	Buyer           id.Principal `json:"buyer"`
	OrgID           id.OrgID     `json:"org_id"`
	EventID         id.EventID   `json:"event_id"`
	Price           int64        `json:"price"`
	Height          uint64       `json:"height"`
	Redeemed        bool         `json:"redeemed"`
	DiscountApplied bool         `json:"discount_applied"`
}

// NewTicket mints a ticket. Preconditions (valid event, valid org, funds)
// are the purchase engine's responsibility; minting itself never fails.
func NewTicket(ticketID id.TicketID, buyer id.Principal, orgID id.OrgID, eventID id.EventID, price int64, height uint64, discountApplied bool) *Ticket {
	return &Ticket{
		ID:              ticketID,
		Buyer:           buyer,
		OrgID:           orgID,
		EventID:         eventID,
		Price:           price,
		Height:          height,
		Redeemed:        false,
		DiscountApplied: discountApplied,
	}
}

// CanRedeem checks the one-way redemption invariant. Use with ApplyRedemption
// in store Execute callbacks.
func (t *Ticket) CanRedeem() error {
	if t.Redeemed {
		return NewLedgerError(FailureAlreadyRedeemed, "ticket has already been redeemed")
	}
	return nil
}

// ApplyRedemption marks the ticket redeemed. Call CanRedeem first.
func (t *Ticket) ApplyRedemption() {
	t.Redeemed = true
}
