// Package service implements the ticketing ledger: configuration setters,
// the event catalog, and the purchase/redemption engine.
//
// The ledger is single-writer serialized: every mutating operation runs under
// one engine lock and one transaction boundary, so no caller ever observes a
// partially applied purchase. There is no blocking inside an operation;
// concurrency control is transaction-level, not internal parallelism.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"ticketledger/internal/audit"
	ticketingmetrics "ticketledger/internal/ticketing/metrics"
	"ticketledger/internal/ticketing/models"
	"ticketledger/internal/ticketing/ports"
	id "ticketledger/pkg/domain"
	dErrors "ticketledger/pkg/domain-errors"
	"ticketledger/pkg/requestcontext"
)

// AuditPublisher is the slice of the audit publisher the service needs.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service owns the ledger configuration aggregate and orchestrates stores
// and external collaborators.
type Service struct {
	mu sync.RWMutex

	owner    id.Principal
	cfg      *models.LedgerConfig
	events   ports.EventStore
	tickets  ports.TicketStore
	orgs     ports.OrgRegistry
	balances ports.BalanceLedger
	nft      ports.NFTRegistry
	clock    ports.Clock
	tx       ports.TxRunner

	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *ticketingmetrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *ticketingmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTxRunner sets the transaction runner for deployments with SQL-backed
// stores. The default runner relies on the engine lock alone, which is
// sufficient for the in-memory stores.
func WithTxRunner(tx ports.TxRunner) Option {
	return func(s *Service) {
		s.tx = tx
	}
}

// WithConfig replaces the bootstrap configuration, e.g. to restore a
// persisted ticket counter.
func WithConfig(cfg *models.LedgerConfig) Option {
	return func(s *Service) {
		s.cfg = cfg
	}
}

// New constructs the ledger service. owner is the principal allowed to
// mutate configuration and the recipient of platform fees.
func New(
	owner id.Principal,
	events ports.EventStore,
	tickets ports.TicketStore,
	orgs ports.OrgRegistry,
	balances ports.BalanceLedger,
	nft ports.NFTRegistry,
	clk ports.Clock,
	opts ...Option,
) (*Service, error) {
	if owner.IsNil() {
		return nil, fmt.Errorf("owner principal is required")
	}
	if events == nil || tickets == nil {
		return nil, fmt.Errorf("event and ticket stores are required")
	}
	if orgs == nil || balances == nil || nft == nil || clk == nil {
		return nil, fmt.Errorf("org registry, balance ledger, nft registry, and clock are required")
	}

	s := &Service{
		owner:    owner,
		cfg:      models.NewLedgerConfig(),
		events:   events,
		tickets:  tickets,
		orgs:     orgs,
		balances: balances,
		nft:      nft,
		clock:    clk,
		tx:       passthroughTx{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// passthroughTx runs the unit directly; the engine lock provides the
// serialization the in-memory stores need.
type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// caller extracts the authenticated principal, failing closed when absent.
func caller(ctx context.Context) (id.Principal, error) {
	p := requestcontext.Caller(ctx)
	if p.IsNil() {
		return "", dErrors.New(dErrors.CodeUnauthorized, "caller principal is required")
	}
	return p, nil
}

// height resolves the logical timestamp for a purchase: a request-scoped
// override wins, otherwise the engine clock is read.
func (s *Service) height(ctx context.Context) uint64 {
	if h, ok := requestcontext.Height(ctx); ok {
		return h
	}
	return s.clock.Height()
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" && event.Detail == "" {
		event.Detail = "request_id=" + requestID
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event.Action),
			"action", event.Action,
			"actor", event.Actor,
			"ticket_id", event.TicketID,
			"event_id", event.EventID,
			"amount", event.Amount,
			"log_type", "audit",
		)
	}
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "emit audit event", "action", event.Action, "error", err)
	}
}
