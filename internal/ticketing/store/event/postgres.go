package event

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

// PostgresStore persists the event catalog. Execute relies on SELECT ... FOR
// UPDATE inside the ambient transaction (pkg/platform/tx) so availability
// decrements serialize with concurrent purchases.
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

func (s *PostgresStore) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (id, organizer, ticket_price, total_tickets, available_tickets, active)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.querier(ctx).ExecContext(ctx, query,
		event.ID.String(),
		event.Organizer.String(),
		event.TicketPrice,
		event.TotalTickets,
		event.AvailableTickets,
		event.Active,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, eventID id.EventID) (*models.Event, error) {
	query := `
		SELECT id, organizer, ticket_price, total_tickets, available_tickets, active
		FROM events
		WHERE id = $1
	`
	return s.scanOne(s.querier(ctx).QueryRowContext(ctx, query, eventID.String()))
}

func (s *PostgresStore) Execute(ctx context.Context, eventID id.EventID, validate func(*models.Event) error, mutate func(*models.Event)) (*models.Event, error) {
	q := s.querier(ctx)
	query := `
		SELECT id, organizer, ticket_price, total_tickets, available_tickets, active
		FROM events
		WHERE id = $1
	`
	if _, inTx := txcontext.From(ctx); inTx {
		query += ` FOR UPDATE`
	}
	event, err := s.scanOne(q.QueryRowContext(ctx, query, eventID.String()))
	if err != nil {
		return nil, err
	}
	if validate != nil {
		if err := validate(event); err != nil {
			return nil, err
		}
	}
	if mutate != nil {
		mutate(event)
	}
	update := `
		UPDATE events
		SET available_tickets = $2, active = $3
		WHERE id = $1
	`
	if _, err := q.ExecContext(ctx, update, event.ID.String(), event.AvailableTickets, event.Active); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *PostgresStore) scanOne(row *sql.Row) (*models.Event, error) {
	var (
		event     models.Event
		rawID     string
		organizer string
	)
	err := row.Scan(&rawID, &organizer, &event.TicketPrice, &event.TotalTickets, &event.AvailableTickets, &event.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan event: %w", err)
	}
	event.ID = id.EventID(rawID)
	event.Organizer = id.Principal(organizer)
	return &event, nil
}
