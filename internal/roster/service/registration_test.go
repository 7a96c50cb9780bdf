package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchdayhq/rosterd/internal/roster/domain"
)

func TestRegisterPlayer(t *testing.T) {
	st := newTestStore(t)
	svc := &RegistrationService{Store: st}

	team := seedTeam(t, st, "T1")
	player := seedPlayer(t, st, "Anna Karlsson", &team.ID)

	account, err := svc.RegisterPlayer(context.Background(), "anna@club.example", "anna-secret-1", "Karlsson, Anna")
	require.NoError(t, err)
	assert.Equal(t, domain.RolePlayer, account.Role)
	assert.Equal(t, domain.StatusPending, account.Status)
	assert.Equal(t, "Anna Karlsson", account.DisplayName)
	require.NotNil(t, account.PlayerID)
	assert.Equal(t, player.ID, *account.PlayerID)
	require.NotNil(t, account.TeamID)
	assert.Equal(t, team.ID, *account.TeamID)

	// Pending means no login yet.
	creds := &CredentialsService{Store: st}
	_, err = creds.Verify(context.Background(), "anna@club.example", "anna-secret-1")
	assert.ErrorIs(t, err, ErrAccountPending)
}

func TestRegisterPlayerNoMatch(t *testing.T) {
	st := newTestStore(t)
	svc := &RegistrationService{Store: st}

	seedPlayer(t, st, "Anna Karlsson", nil)

	_, err := svc.RegisterPlayer(context.Background(), "bob@club.example", "bob-secret-1", "Bob Svensson")
	assert.ErrorIs(t, err, ErrNoPlayerMatch)
}

func TestRegisterPlayerAlreadyLinked(t *testing.T) {
	st := newTestStore(t)
	svc := &RegistrationService{Store: st}

	seedPlayer(t, st, "Anna Karlsson", nil)

	_, err := svc.RegisterPlayer(context.Background(), "anna@club.example", "anna-secret-1", "Anna Karlsson")
	require.NoError(t, err)

	_, err = svc.RegisterPlayer(context.Background(), "imposter@club.example", "other-secret-1", "Anna Karlsson")
	assert.ErrorIs(t, err, ErrAlreadyLinked)
}

func TestRegisterPlayerDuplicateEmail(t *testing.T) {
	st := newTestStore(t)
	svc := &RegistrationService{Store: st}

	seedPlayer(t, st, "Anna Karlsson", nil)
	seedAccount(t, st, "anna@club.example", "p@ss1234", domain.RoleViewer, domain.StatusActive, nil)

	_, err := svc.RegisterPlayer(context.Background(), "anna@club.example", "anna-secret-1", "Anna Karlsson")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegisterPlayerWeakPassword(t *testing.T) {
	st := newTestStore(t)
	svc := &RegistrationService{Store: st}

	seedPlayer(t, st, "Anna Karlsson", nil)

	_, err := svc.RegisterPlayer(context.Background(), "anna@club.example", "short", "Anna Karlsson")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestApproveActivatesAccount(t *testing.T) {
	st := newTestStore(t)
	svc := &RegistrationService{Store: st}

	admin := seedAccount(t, st, "admin@club.example", "p@ss1234", domain.RoleAdmin, domain.StatusActive, nil)
	seedPlayer(t, st, "Anna Karlsson", nil)

	account, err := svc.RegisterPlayer(context.Background(), "anna@club.example", "anna-secret-1", "Anna Karlsson")
	require.NoError(t, err)

	require.NoError(t, svc.Approve(context.Background(), adminClaims(admin), account.ID))

	creds := &CredentialsService{Store: st}
	verified, err := creds.Verify(context.Background(), "anna@club.example", "anna-secret-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, verified.Status)
}

func TestRejectIsTerminal(t *testing.T) {
	st := newTestStore(t)
	svc := &RegistrationService{Store: st}

	admin := seedAccount(t, st, "admin@club.example", "p@ss1234", domain.RoleAdmin, domain.StatusActive, nil)
	seedPlayer(t, st, "Anna Karlsson", nil)

	account, err := svc.RegisterPlayer(context.Background(), "anna@club.example", "anna-secret-1", "Anna Karlsson")
	require.NoError(t, err)

	require.NoError(t, svc.Reject(context.Background(), adminClaims(admin), account.ID))

	// No takebacks: a rejected account cannot be approved afterwards.
	err = svc.Approve(context.Background(), adminClaims(admin), account.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusChange)

	creds := &CredentialsService{Store: st}
	_, err = creds.Verify(context.Background(), "anna@club.example", "anna-secret-1")
	assert.ErrorIs(t, err, ErrAccountRejected)
}

func TestApproveUnknownAccount(t *testing.T) {
	st := newTestStore(t)
	svc := &RegistrationService{Store: st}

	admin := seedAccount(t, st, "admin@club.example", "p@ss1234", domain.RoleAdmin, domain.StatusActive, nil)

	err := svc.Approve(context.Background(), adminClaims(admin), "no-such-account")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestApproveDeniedForCoach(t *testing.T) {
	st := newTestStore(t)
	svc := &RegistrationService{Store: st}

	coach := seedAccount(t, st, "coach@club.example", "p@ss1234", domain.RoleCoach, domain.StatusActive, nil)

	err := svc.Approve(context.Background(), adminClaims(coach), "whatever")
	assert.ErrorIs(t, err, ErrPolicyDenied)
}

func TestListPending(t *testing.T) {
	st := newTestStore(t)
	svc := &RegistrationService{Store: st}

	admin := seedAccount(t, st, "admin@club.example", "p@ss1234", domain.RoleAdmin, domain.StatusActive, nil)
	seedPlayer(t, st, "Anna Karlsson", nil)
	seedPlayer(t, st, "Bob Svensson", nil)

	_, err := svc.RegisterPlayer(context.Background(), "anna@club.example", "anna-secret-1", "Anna Karlsson")
	require.NoError(t, err)
	_, err = svc.RegisterPlayer(context.Background(), "bob@club.example", "bob-secret-1", "Bob Svensson")
	require.NoError(t, err)

	pending, err := svc.ListPending(context.Background(), adminClaims(admin))
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	viewer := seedAccount(t, st, "viewer@club.example", "p@ss1234", domain.RoleViewer, domain.StatusActive, nil)
	_, err = svc.ListPending(context.Background(), adminClaims(viewer))
	assert.ErrorIs(t, err, ErrPolicyDenied)
}
