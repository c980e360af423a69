package ticket

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrTicketNotFound is returned when a ticket record is not found.
var ErrTicketNotFound = errors.New("ticket not found")

// Repository provides operations on the tickets table.
type Repository interface {
	Create(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, id uuid.UUID) (*Ticket, error)
	List(ctx context.Context) ([]Ticket, error)
	ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]Ticket, error)
	Update(ctx context.Context, t *Ticket) error
	Delete(ctx context.Context, id uuid.UUID) error
}
