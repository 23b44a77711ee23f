package models

import (
	"strings"

	id "ticketledger/pkg/domain"
	dErrors "ticketledger/pkg/domain-errors"
)

// Request DTOs for the HTTP layer. Normalize trims input; Validate rejects
// structurally malformed requests before they reach the engine, which applies
// the domain validation order itself.

type CreateEventRequest struct {
	EventID      string `json:"event_id"`
	TicketPrice  int64  `json:"ticket_price"`
	TotalTickets int64  `json:"total_tickets"`
}

func (r *CreateEventRequest) Normalize() {
	r.EventID = strings.TrimSpace(r.EventID)
}

type BuyTicketRequest struct {
	OrgID         id.OrgID `json:"org_id"`
	EventID       string   `json:"event_id"`
	ApplyDiscount bool     `json:"apply_discount"`
}

func (r *BuyTicketRequest) Normalize() {
	r.EventID = strings.TrimSpace(r.EventID)
}

type SetEscrowRequest struct {
	Principal string `json:"principal"`
}

func (r *SetEscrowRequest) Normalize() {
	r.Principal = strings.TrimSpace(r.Principal)
}

func (r *SetEscrowRequest) Validate() error {
	if r.Principal == "" {
		return dErrors.New(dErrors.CodeValidation, "principal is required")
	}
	return nil
}

type SetPlatformFeeRequest struct {
	Fee int64 `json:"fee"`
}

type SetDiscountRateRequest struct {
	Rate int64 `json:"rate"`
}
