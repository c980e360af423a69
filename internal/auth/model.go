package auth

import "github.com/helpdesk14/helpdesk/internal/user"

// Caller is the authenticated identity bound to the request being served.
// It is built fresh per request from a validated token: the user record and
// its role are re-loaded from the store, never trusted from token claims.
// Caller values are passed explicitly to authorization-aware code and
// discarded when the request ends.
type Caller struct {
	User user.User
}

// ID returns the caller's user identifier.
func (c *Caller) ID() string {
	return c.User.ID.String()
}

// Role returns the caller's current role as loaded for this request.
func (c *Caller) Role() user.Role {
	return c.User.Role
}
