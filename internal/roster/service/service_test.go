package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/matchdayhq/rosterd/internal/roster/domain"
	"github.com/matchdayhq/rosterd/internal/roster/store"
	"github.com/matchdayhq/rosterd/internal/roster/store/drivers/sqlite"
	"github.com/matchdayhq/rosterd/pkg/cryptox"
	"github.com/matchdayhq/rosterd/pkg/idx"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "rosterd-service-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

// newTestStore returns a migrated in-memory store.
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedTeam(t *testing.T, st store.Store, name string) domain.Team {
	t.Helper()

	now := time.Now().UTC()
	team := domain.Team{ID: idx.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, st.Teams().CreateTeam(context.Background(), team))
	return team
}

func seedPlayer(t *testing.T, st store.Store, fullName string, teamID *string) domain.Player {
	t.Helper()

	now := time.Now().UTC()
	player := domain.Player{ID: idx.New().String(), FullName: fullName, TeamID: teamID, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, st.Players().CreatePlayer(context.Background(), player))
	return player
}

func seedAccount(t *testing.T, st store.Store, email, password string, role domain.Role, status domain.Status, teamID *string) domain.Account {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	now := time.Now().UTC()
	account := domain.Account{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  "Test Account",
		Role:         role,
		Status:       status,
		TeamID:       teamID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Accounts().CreateAccount(context.Background(), account))
	return account
}

func adminClaims(account domain.Account) domain.AuthorizationClaims {
	return domain.AuthorizationClaims{
		AccountID:   account.ID,
		Role:        account.Role,
		TeamID:      account.TeamID,
		DisplayName: account.DisplayName,
	}
}
