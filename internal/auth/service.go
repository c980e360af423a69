package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/helpdesk14/helpdesk/internal/user"
)

// ErrInvalidCredentials is returned when login fails. An unknown email and a
// wrong password produce this same error so responses cannot be used to
// enumerate registered addresses.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service provides authentication operations.
type Service struct {
	users  user.Repository
	hasher *Hasher
	codec  *TokenCodec
}

// NewService creates a new auth Service.
func NewService(users user.Repository, hasher *Hasher, codec *TokenCodec) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		codec:  codec,
	}
}

// Login verifies the email/password pair against the store and, on success,
// issues a signed identity token for the user. No login counters or lockout
// state is kept.
func (s *Service) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("looking up user: %w", err)
	}

	if !s.hasher.Verify(password, u.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.codec.Issue(u.Email)
	if err != nil {
		return "", nil, fmt.Errorf("issuing token: %w", err)
	}

	return token, u, nil
}
