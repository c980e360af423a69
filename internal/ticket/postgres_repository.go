package ticket

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new ticket record.
func (r *PostgresRepository) Create(ctx context.Context, t *Ticket) error {
	query := `
		INSERT INTO tickets (title, description, status, requester_id, assignee_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		t.Title,
		t.Description,
		string(t.Status),
		t.RequesterID,
		t.AssigneeID,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting ticket: %w", err)
	}

	return nil
}

// GetByID retrieves a single ticket by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	query := `
		SELECT id, title, description, status, requester_id, assignee_id,
		       created_at, updated_at
		FROM tickets
		WHERE id = $1`

	var t Ticket
	var status string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &status,
		&t.RequesterID, &t.AssigneeID,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("querying ticket: %w", err)
	}
	t.Status = Status(status)

	return &t, nil
}

// List retrieves all tickets ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context) ([]Ticket, error) {
	query := `
		SELECT id, title, description, status, requester_id, assignee_id,
		       created_at, updated_at
		FROM tickets
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}
	return scanTickets(rows)
}

// ListByRequester retrieves the tickets created by the given requester,
// ordered by creation time.
func (r *PostgresRepository) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]Ticket, error) {
	query := `
		SELECT id, title, description, status, requester_id, assignee_id,
		       created_at, updated_at
		FROM tickets
		WHERE requester_id = $1
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, requesterID)
	if err != nil {
		return nil, fmt.Errorf("listing tickets by requester: %w", err)
	}
	return scanTickets(rows)
}

// Update persists the mutable fields of a ticket. The requester is fixed at
// creation and deliberately absent from the statement.
func (r *PostgresRepository) Update(ctx context.Context, t *Ticket) error {
	query := `
		UPDATE tickets
		SET title = $2, description = $3, status = $4, assignee_id = $5,
		    updated_at = NOW()
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query,
		t.ID, t.Title, t.Description, string(t.Status), t.AssigneeID)
	if err != nil {
		return fmt.Errorf("updating ticket: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTicketNotFound
	}

	return nil
}

// Delete removes a ticket record.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting ticket: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTicketNotFound
	}

	return nil
}

func scanTickets(rows pgx.Rows) ([]Ticket, error) {
	defer rows.Close()

	var tickets []Ticket
	for rows.Next() {
		var t Ticket
		var status string
		err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &status,
			&t.RequesterID, &t.AssigneeID,
			&t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning ticket row: %w", err)
		}
		t.Status = Status(status)
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ticket rows: %w", err)
	}

	if tickets == nil {
		tickets = []Ticket{}
	}

	return tickets, nil
}
