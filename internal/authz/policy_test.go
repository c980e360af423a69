package authz_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/helpdesk14/helpdesk/internal/auth"
	"github.com/helpdesk14/helpdesk/internal/authz"
	"github.com/helpdesk14/helpdesk/internal/user"
)

func callerWithRole(role user.Role) *auth.Caller {
	return &auth.Caller{User: user.User{ID: uuid.New(), Email: "caller@x.com", Role: role}}
}

func TestDecide_TechAllowsEverything(t *testing.T) {
	tech := callerWithRole(user.RoleTech)
	foreign := &authz.Resource{RequesterID: uuid.New()}

	ops := []authz.Operation{
		authz.OpUserManage,
		authz.OpTicketCreate,
		authz.OpTicketRead,
		authz.OpTicketUpdate,
		authz.OpTicketDelete,
	}

	for _, op := range ops {
		decision := authz.Decide(tech, op, foreign)
		assert.True(t, decision.Allow, "TECH should be allowed %s", op)
	}
}

func TestDecide_UserTicketRead(t *testing.T) {
	caller := callerWithRole(user.RoleUser)

	own := authz.Decide(caller, authz.OpTicketRead, &authz.Resource{RequesterID: caller.User.ID})
	assert.True(t, own.Allow, "USER should read their own ticket")

	other := authz.Decide(caller, authz.OpTicketRead, &authz.Resource{RequesterID: uuid.New()})
	assert.False(t, other.Allow, "USER should not read another requester's ticket")
	assert.NotEmpty(t, other.Reason)
}

func TestDecide_UserTicketCreate(t *testing.T) {
	caller := callerWithRole(user.RoleUser)

	decision := authz.Decide(caller, authz.OpTicketCreate, nil)
	assert.True(t, decision.Allow)
}

// Role gates before ownership: a TECH-only operation denies a USER even on a
// ticket they requested themselves.
func TestDecide_RoleGatesBeforeOwnership(t *testing.T) {
	caller := callerWithRole(user.RoleUser)
	own := &authz.Resource{RequesterID: caller.User.ID}

	for _, op := range []authz.Operation{authz.OpTicketUpdate, authz.OpTicketDelete, authz.OpUserManage} {
		decision := authz.Decide(caller, op, own)
		assert.False(t, decision.Allow, "USER should be denied %s even on their own resource", op)
	}
}

func TestDecide_UnknownRoleDenied(t *testing.T) {
	caller := callerWithRole(user.Role("ADMIN"))

	for _, op := range []authz.Operation{
		authz.OpUserManage,
		authz.OpTicketCreate,
		authz.OpTicketRead,
		authz.OpTicketUpdate,
		authz.OpTicketDelete,
	} {
		decision := authz.Decide(caller, op, &authz.Resource{RequesterID: caller.User.ID})
		assert.False(t, decision.Allow, "unrecognized role should be denied %s", op)
	}
}

func TestDecide_UserReadWithoutResourceDenied(t *testing.T) {
	caller := callerWithRole(user.RoleUser)

	decision := authz.Decide(caller, authz.OpTicketRead, nil)
	assert.False(t, decision.Allow)
}

func TestListScope(t *testing.T) {
	assert.Equal(t, authz.ScopeAll, authz.ListScope(callerWithRole(user.RoleTech)))
	assert.Equal(t, authz.ScopeOwn, authz.ListScope(callerWithRole(user.RoleUser)))
	assert.Equal(t, authz.ScopeNone, authz.ListScope(callerWithRole(user.Role("ADMIN"))))
}
