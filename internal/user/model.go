package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents a row in the users table. PasswordHash is a bcrypt digest;
// the plaintext is hashed once at creation and never stored.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	FirstName    string
	LastName     string
	CreatedAt    time.Time
}
