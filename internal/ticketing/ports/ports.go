// Package ports declares the interfaces the ticketing service depends on.
// Stores and external collaborators implement these so the engine can be
// exercised with in-memory components in tests and swapped backends in
// production without rewiring business code.
package ports

import (
	"context"
	"errors"

	"ticketledger/internal/ticketing/models"
	id "ticketledger/pkg/domain"
)

// ErrInsufficientFunds is returned by BalanceLedger.Debit when the principal
// cannot cover the amount. The engine translates it to the wire taxonomy.
var ErrInsufficientFunds = errors.New("insufficient funds")

// EventStore is the event catalog. Execute runs validate-then-mutate under
// the store's lock (mutex or FOR UPDATE) so availability checks and
// decrements cannot interleave.
type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, eventID id.EventID) (*models.Event, error)
	Execute(ctx context.Context, eventID id.EventID, validate func(*models.Event) error, mutate func(*models.Event)) (*models.Event, error)
}

// TicketStore persists minted tickets. Mint never fails on domain grounds;
// preconditions are validated by the engine before the id is allocated.
type TicketStore interface {
	Mint(ctx context.Context, ticket *models.Ticket) error
	FindByID(ctx context.Context, ticketID id.TicketID) (*models.Ticket, error)
	Execute(ctx context.Context, ticketID id.TicketID, validate func(*models.Ticket) error, mutate func(*models.Ticket)) (*models.Ticket, error)
}

// OrgRegistry answers organization membership queries. Pure query, no side
// effects.
type OrgRegistry interface {
	IsValidOrg(ctx context.Context, orgID id.OrgID) (bool, error)
}

// BalanceLedger is the external account-balance service. Debit performs an
// atomic check-and-deduct and returns ErrInsufficientFunds (possibly
// wrapped) when the balance cannot cover the amount.
type BalanceLedger interface {
	Balance(ctx context.Context, principal id.Principal) (int64, error)
	Debit(ctx context.Context, principal id.Principal, amount int64) error
	Credit(ctx context.Context, principal id.Principal, amount int64) error
}

// NFTRegistry receives a mint notification per successful purchase.
// Fire-and-forget within the purchase flow.
type NFTRegistry interface {
	Mint(ctx context.Context, mint models.NFTMint) error
}

// Clock is the monotonically non-decreasing logical clock purchases are
// timestamped with. Implementations must never go backwards.
type Clock interface {
	Height() uint64
}

// TxRunner gives the engine one atomic commit point across stores. The
// in-memory runner serializes on a mutex; the SQL runner opens a database
// transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
