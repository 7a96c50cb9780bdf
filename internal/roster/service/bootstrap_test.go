package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchdayhq/rosterd/internal/roster/domain"
)

func TestEnsureSuperUserOnEmptyStore(t *testing.T) {
	st := newTestStore(t)
	svc := &BootstrapService{
		Store:       st,
		Email:       "root@club.example",
		Password:    "root-secret-1",
		DisplayName: "Root",
	}

	require.NoError(t, svc.EnsureSuperUser(context.Background()))

	creds := &CredentialsService{Store: st}
	account, err := creds.Verify(context.Background(), "root@club.example", "root-secret-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSuperUser, account.Role)
	assert.Equal(t, domain.StatusActive, account.Status)
}

func TestEnsureSuperUserNoopOnPopulatedStore(t *testing.T) {
	st := newTestStore(t)
	seedAccount(t, st, "existing@club.example", "p@ss1234", domain.RoleAdmin, domain.StatusActive, nil)

	svc := &BootstrapService{
		Store:    st,
		Email:    "root@club.example",
		Password: "root-secret-1",
	}
	require.NoError(t, svc.EnsureSuperUser(context.Background()))

	_, err := st.Accounts().GetAccountByEmail(context.Background(), "root@club.example")
	assert.Error(t, err)
}

func TestEnsureSuperUserUnconfigured(t *testing.T) {
	st := newTestStore(t)
	svc := &BootstrapService{Store: st}

	err := svc.EnsureSuperUser(context.Background())
	assert.ErrorIs(t, err, ErrBootstrapNotConfigured)
}
