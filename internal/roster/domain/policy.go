package domain

// Authorization predicates. Pure and stateless; resource handlers call the
// relevant predicate before any mutation. Ownership is enforced by team
// equality, which keeps every check O(1) without a separate ACL store.

// CanCreate reports whether the role may create resources.
func CanCreate(role Role) bool {
	switch role {
	case RoleAdmin, RoleCoach, RoleSuperUser:
		return true
	}
	return false
}

// CanEdit reports whether the requester may mutate a resource owned by
// resourceTeamID. Admins and super users edit anything. Coaches edit only
// resources of their own team; a resource with no team is shared reference
// data (opponents, competitions) and stays editable by any coach.
func CanEdit(role Role, requesterTeamID, resourceTeamID *string) bool {
	switch role {
	case RoleSuperUser, RoleAdmin:
		return true
	case RoleCoach:
		if resourceTeamID == nil {
			return true
		}
		return requesterTeamID != nil && *requesterTeamID == *resourceTeamID
	}
	return false
}

// CanDelete reports whether the role may delete resources. Deletion is the
// most restricted operation in the system.
func CanDelete(role Role) bool {
	return role == RoleSuperUser
}

// CanManageInvitations reports whether the role may issue, list, or revoke
// invitations and approve or reject registrations.
func CanManageInvitations(role Role) bool {
	return role == RoleAdmin || role == RoleSuperUser
}
