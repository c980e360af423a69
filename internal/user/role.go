package user

import "fmt"

// Role is the coarse privilege class assigned to a user. The set is closed:
// the authorization policy switches exhaustively over these two values and
// denies anything else.
type Role string

const (
	// RoleUser may create tickets and see only their own.
	RoleUser Role = "USER"
	// RoleTech may manage users and any ticket.
	RoleTech Role = "TECH"
)

// ParseRole converts a raw string into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleTech:
		return RoleTech, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Valid reports whether r is one of the recognized roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleTech
}
