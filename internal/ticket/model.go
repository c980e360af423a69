package ticket

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a ticket.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusClosed     Status = "CLOSED"
)

// ParseStatus converts a raw string into a Status, rejecting unknown values.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOpen, StatusInProgress, StatusClosed:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown ticket status %q", s)
	}
}

// Ticket represents a row in the tickets table. RequesterID is set once at
// creation to the authenticated caller and never changes; AssigneeID, when
// present, must reference a TECH user.
type Ticket struct {
	ID          uuid.UUID
	Title       string
	Description string
	Status      Status
	RequesterID uuid.UUID
	AssigneeID  *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
