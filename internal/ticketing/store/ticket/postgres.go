package ticket

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"ticketledger/internal/ticketing/models"
	id "ticketledger/pkg/domain"
	"ticketledger/pkg/platform/sentinel"
	txcontext "ticketledger/pkg/platform/tx"
)

// PostgresStore persists minted tickets.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) querier(ctx context.Context) querier {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const uniqueViolation = "23505"

func (s *PostgresStore) Mint(ctx context.Context, ticket *models.Ticket) error {
	query := `
		INSERT INTO tickets (id, buyer, org_id, event_id, price, height, redeemed, discount_applied)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.querier(ctx).ExecContext(ctx, query,
		int64(ticket.ID),
		ticket.Buyer.String(),
		int64(ticket.OrgID),
		ticket.EventID.String(),
		ticket.Price,
		int64(ticket.Height),
		ticket.Redeemed,
		ticket.DiscountApplied,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, ticketID id.TicketID) (*models.Ticket, error) {
	query := `
		SELECT id, buyer, org_id, event_id, price, height, redeemed, discount_applied
		FROM tickets
		WHERE id = $1
	`
	return s.scanOne(s.querier(ctx).QueryRowContext(ctx, query, int64(ticketID)))
}

func (s *PostgresStore) Execute(ctx context.Context, ticketID id.TicketID, validate func(*models.Ticket) error, mutate func(*models.Ticket)) (*models.Ticket, error) {
	q := s.querier(ctx)
	query := `
		SELECT id, buyer, org_id, event_id, price, height, redeemed, discount_applied
		FROM tickets
		WHERE id = $1
	`
	if _, inTx := txcontext.From(ctx); inTx {
		query += ` FOR UPDATE`
	}
	ticket, err := s.scanOne(q.QueryRowContext(ctx, query, int64(ticketID)))
	if err != nil {
		return nil, err
	}
	if validate != nil {
		if err := validate(ticket); err != nil {
			return nil, err
		}
	}
	if mutate != nil {
		mutate(ticket)
	}
	update := `
		UPDATE tickets
		SET redeemed = $2
		WHERE id = $1
	`
	if _, err := q.ExecContext(ctx, update, int64(ticket.ID), ticket.Redeemed); err != nil {
		return nil, fmt.Errorf("update ticket: %w", err)
	}
	return ticket, nil
}

func (s *PostgresStore) scanOne(row *sql.Row) (*models.Ticket, error) {
	var (
		ticket  models.Ticket
		rawID   int64
		buyer   string
		orgID   int64
		eventID string
		height  int64
	)
	err := row.Scan(&rawID, &buyer, &orgID, &eventID, &ticket.Price, &height, &ticket.Redeemed, &ticket.DiscountApplied)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan ticket: %w", err)
	}
	ticket.ID = id.TicketID(rawID)
	ticket.Buyer = id.Principal(buyer)
	ticket.OrgID = id.OrgID(orgID)
	ticket.EventID = id.EventID(eventID)
	ticket.Height = uint64(height)
	return &ticket, nil
}
