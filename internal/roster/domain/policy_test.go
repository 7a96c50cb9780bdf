package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCanCreate(t *testing.T) {
	t.Parallel()

	allowed := map[Role]bool{
		RoleAdmin:     true,
		RoleCoach:     true,
		RoleSuperUser: true,
		RoleViewer:    false,
		RolePlayer:    false,
	}

	for _, role := range Roles {
		require.Equal(t, allowed[role], CanCreate(role), "role %s", role)
	}
}

func TestCanDeleteOnlySuperUser(t *testing.T) {
	t.Parallel()

	for _, role := range Roles {
		require.Equal(t, role == RoleSuperUser, CanDelete(role), "role %s", role)
	}
}

func TestCanManageInvitations(t *testing.T) {
	t.Parallel()

	allowed := map[Role]bool{
		RoleAdmin:     true,
		RoleSuperUser: true,
		RoleCoach:     false,
		RoleViewer:    false,
		RolePlayer:    false,
	}

	for _, role := range Roles {
		require.Equal(t, allowed[role], CanManageInvitations(role), "role %s", role)
	}
}

func TestCanEdit(t *testing.T) {
	t.Parallel()

	teamA := strPtr("team-a")
	teamB := strPtr("team-b")

	t.Run("super user and admin edit anything", func(t *testing.T) {
		for _, role := range []Role{RoleSuperUser, RoleAdmin} {
			require.True(t, CanEdit(role, nil, teamB))
			require.True(t, CanEdit(role, teamA, teamB))
			require.True(t, CanEdit(role, teamA, nil))
		}
	})

	t.Run("coach edits own team only", func(t *testing.T) {
		require.True(t, CanEdit(RoleCoach, teamA, strPtr("team-a")))
		require.False(t, CanEdit(RoleCoach, teamA, teamB))
		require.False(t, CanEdit(RoleCoach, nil, teamB))
	})

	t.Run("coach edits shared reference data", func(t *testing.T) {
		// Resources with no team (opponents, competitions) are editable by
		// any coach, including coaches without a home team.
		require.True(t, CanEdit(RoleCoach, teamA, nil))
		require.True(t, CanEdit(RoleCoach, nil, nil))
	})

	t.Run("viewer and player never edit", func(t *testing.T) {
		for _, role := range []Role{RoleViewer, RolePlayer} {
			require.False(t, CanEdit(role, teamA, teamA))
			require.False(t, CanEdit(role, teamA, nil))
			require.False(t, CanEdit(role, nil, nil))
		}
	})
}
