package domain

import "fmt"

// Role is an account's single role. Authorization is coarse: a role plus the
// account's team boundary decides everything, there are no per-field grants.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCoach     Role = "coach"
	RoleSuperUser Role = "super_user"
	RoleViewer    Role = "viewer"
	RolePlayer    Role = "player"
)

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleCoach, RoleSuperUser, RoleViewer, RolePlayer}

// ParseRole validates a stored or submitted role string.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	switch r {
	case RoleAdmin, RoleCoach, RoleSuperUser, RoleViewer, RolePlayer:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Invitable reports whether the role may be granted via invitation.
// Super user is deliberately excluded: that role is provisioned out of band.
func (r Role) Invitable() bool {
	switch r {
	case RoleAdmin, RoleCoach, RoleViewer, RolePlayer:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
