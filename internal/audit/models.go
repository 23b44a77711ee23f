// Package audit is the append-only transfer/audit log. It is written for
// observability and reconciliation; the engine never consults it for
// correctness.
package audit

import (
	"context"
	"time"

	id "ticketledger/pkg/domain"
)

// Action classifies an audit event.
type Action string

const (
	// ActionTransfer records one settlement leg of a purchase. The buyer was
	// debited once for the total; transfer events denote destination
	// accounting only.
	ActionTransfer       Action = "transfer"
	ActionEventCreated   Action = "event_created"
	ActionTicketMinted   Action = "ticket_minted"
	ActionTicketRedeemed Action = "ticket_redeemed"
	ActionConfigChanged  Action = "config_changed"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string       `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Action    Action       `json:"action"`
	Actor     id.Principal `json:"actor,omitempty"`
	TicketID  string       `json:"ticket_id,omitempty"`
	EventID   string       `json:"event_id,omitempty"`
	Amount    int64        `json:"amount,omitempty"`
	From      id.Principal `json:"from,omitempty"`
	To        id.Principal `json:"to,omitempty"`
	Height    uint64       `json:"height,omitempty"`
	Detail    string       `json:"detail,omitempty"`
}

// Store is the sink behind the publisher.
type Store interface {
	Append(ctx context.Context, event Event) error
}
