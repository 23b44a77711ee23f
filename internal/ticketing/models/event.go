package models

import (
	id "ticketledger/pkg/domain"
)

// Event is the aggregate for a ticketed event.
//
// Invariants:
//   - ID is non-empty and at most 32 bytes
//   - TicketPrice is positive
//   - 0 < TotalTickets <= configured maximum at creation time
//   - 0 <= AvailableTickets <= TotalTickets; AvailableTickets only decreases
//   - TotalTickets and Organizer are immutable after construction
//
// Active is set true at creation and never flipped in the core flows; it is
// still checked on every sale so a future deactivation path needs no engine
// changes.
type Event struct {
	ID               id.EventID   `json:"id"`
	Organizer        id.Principal `json:"organizer"`
	TicketPrice      int64        `json:"ticket_price"`
	TotalTickets     int64        `json:"total_tickets"`
	AvailableTickets int64        `json:"available_tickets"`
	Active           bool         `json:"active"`
}

// NewEvent validates creation invariants and returns the aggregate with the
// full supply available. Validation order matches the wire contract: identity
// shape first, then amounts.
func NewEvent(eventID id.EventID, organizer id.Principal, ticketPrice, totalTickets, maxTicketsPerEvent int64) (*Event, error) {
	if !eventID.Valid() {
		return nil, NewLedgerError(FailureInvalidEvent, "event id must be 1-32 bytes")
	}
	if ticketPrice <= 0 {
		return nil, NewLedgerError(FailureInvalidAmount, "ticket price must be positive")
	}
	if totalTickets <= 0 {
		return nil, NewLedgerError(FailureInvalidAmount, "total tickets must be positive")
	}
	if totalTickets > maxTicketsPerEvent {
		return nil, NewLedgerError(FailureInvalidAmount, "total tickets exceeds per-event maximum")
	}
	return &Event{
		ID:               eventID,
		Organizer:        organizer,
		TicketPrice:      ticketPrice,
		TotalTickets:     totalTickets,
		AvailableTickets: totalTickets,
		Active:           true,
	}, nil
}

// Sellable reports whether a ticket can currently be sold for this event.
func (e *Event) Sellable() bool {
	return e.Active && e.AvailableTickets > 0
}

// CanSell checks the sale preconditions. Use with ApplySale in store Execute
// callbacks so validation and mutation happen under one lock.
func (e *Event) CanSell() error {
	if !e.Active || e.AvailableTickets <= 0 {
		return NewLedgerError(FailureInvalidEvent, "event is not selling tickets")
	}
	if e.TicketPrice <= 0 {
		return NewLedgerError(FailureInvalidAmount, "event has a non-positive ticket price")
	}
	return nil
}

// ApplySale consumes one unit of supply. Call CanSell first; AvailableTickets
// never goes below zero through this path.
func (e *Event) ApplySale() {
	e.AvailableTickets--
}
