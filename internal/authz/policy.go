// Package authz holds the pure authorization policy: a decision function
// over (caller role, caller id, resource owner) with no I/O. Role gates are
// checked before ownership, so a TECH-only operation denies a USER even on a
// ticket they created.
package authz

import (
	"github.com/google/uuid"

	"github.com/helpdesk14/helpdesk/internal/auth"
	"github.com/helpdesk14/helpdesk/internal/user"
)

// Operation identifies an access-controlled action.
type Operation string

const (
	// OpUserManage covers all user-record operations: create, list,
	// read-by-email, update, delete.
	OpUserManage   Operation = "user:manage"
	OpTicketCreate Operation = "ticket:create"
	OpTicketRead   Operation = "ticket:read"
	OpTicketUpdate Operation = "ticket:update"
	OpTicketDelete Operation = "ticket:delete"
)

// Scope is the visibility granted to a ticket listing.
type Scope int

const (
	// ScopeNone denies the listing entirely.
	ScopeNone Scope = iota
	// ScopeOwn limits the listing to tickets the caller requested.
	ScopeOwn
	// ScopeAll grants the full listing.
	ScopeAll
)

// Decision is the result of an authorization check. It is computed per
// request and never stored.
type Decision struct {
	Allow  bool
	Reason string
}

func allow() Decision {
	return Decision{Allow: true}
}

func deny(reason string) Decision {
	return Decision{Allow: false, Reason: reason}
}

// Resource describes the ticket being acted on, for ownership checks.
type Resource struct {
	RequesterID uuid.UUID
}

// Decide maps a caller and operation to an allow/deny decision. For
// ticket-read the resource must carry the ticket's requester; the other
// operations ignore it. Callers with an unrecognized role are always denied.
func Decide(caller *auth.Caller, op Operation, resource *Resource) Decision {
	switch caller.Role() {
	case user.RoleTech:
		return allow()
	case user.RoleUser:
		return decideUser(caller, op, resource)
	default:
		return deny("unrecognized role")
	}
}

// decideUser applies the USER-role rules: tickets may be created, and read
// only when owned; everything else is TECH-only.
func decideUser(caller *auth.Caller, op Operation, resource *Resource) Decision {
	switch op {
	case OpTicketCreate:
		return allow()
	case OpTicketRead:
		if resource == nil {
			return deny("ticket ownership unknown")
		}
		if resource.RequesterID == caller.User.ID {
			return allow()
		}
		return deny("ticket belongs to another requester")
	case OpTicketUpdate, OpTicketDelete, OpUserManage:
		return deny("requires TECH role")
	default:
		return deny("unknown operation")
	}
}

// ListScope returns the ticket-listing visibility for the caller. A USER's
// narrower scope is expressed as filtering, not as an error.
func ListScope(caller *auth.Caller) Scope {
	switch caller.Role() {
	case user.RoleTech:
		return ScopeAll
	case user.RoleUser:
		return ScopeOwn
	default:
		return ScopeNone
	}
}
