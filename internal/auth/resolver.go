package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/helpdesk14/helpdesk/internal/user"
)

// ErrUnauthenticated is returned when a request cannot be tied to a live
// identity. Missing, malformed, tampered and expired tokens, as well as
// tokens whose subject no longer exists, all collapse to this one error.
var ErrUnauthenticated = errors.New("not authenticated")

// Resolver turns a raw bearer token into an authenticated Caller.
type Resolver struct {
	users user.Repository
	codec *TokenCodec
}

// NewResolver creates a new Resolver.
func NewResolver(users user.Repository, codec *TokenCodec) *Resolver {
	return &Resolver{users: users, codec: codec}
}

// Resolve validates rawToken and re-loads the subject from the store. The
// role bound to the returned Caller is whatever the store holds right now,
// so role changes apply on the next request even for tokens issued earlier.
// A token for a since-deleted identity fails closed.
func (r *Resolver) Resolve(ctx context.Context, rawToken string) (*Caller, error) {
	claims, err := r.codec.Parse(rawToken)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	u, err := r.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("loading token subject: %w", err)
	}

	return &Caller{User: *u}, nil
}
