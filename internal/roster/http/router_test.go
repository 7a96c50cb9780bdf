package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchdayhq/rosterd/internal/roster/domain"
	"github.com/matchdayhq/rosterd/internal/roster/service"
	"github.com/matchdayhq/rosterd/internal/roster/store"
	"github.com/matchdayhq/rosterd/internal/roster/store/drivers/sqlite"
	"github.com/matchdayhq/rosterd/pkg/cryptox"
	"github.com/matchdayhq/rosterd/pkg/idx"
	"github.com/matchdayhq/rosterd/pkg/jwtx"
	"github.com/matchdayhq/rosterd/pkg/slogx"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "rosterd-http-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

type testEnv struct {
	router *Router
	store  store.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.ApplyMigrations())

	priv, err := jwtx.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("test-key", priv)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)

	logger := slogx.New(slogx.Config{Service: "rosterd-test", Env: "dev", Level: "error", Format: "text"})

	sessions := &service.SessionService{
		Signer:   signer,
		Verifier: jwtx.NewVerifierEdDSA(keys, "rosterd-test"),
	}

	router := NewRouter(RouterConfig{
		Keys:         keys,
		Issuer:       "rosterd-test",
		BuildVersion: "test",
		CookieSecure: false,
		Store:        st,
		Logger:       logger,
	})
	router.SessionService = sessions
	router.CredentialsService = &service.CredentialsService{Store: st}
	router.RegistrationService = &service.RegistrationService{Store: st}
	router.InvitationService = &service.InvitationService{
		Store:     st,
		PublicURL: "https://roster.club.example",
	}
	router.ApplyRoutes()

	return &testEnv{router: router, store: st}
}

func (e *testEnv) seedAdmin(t *testing.T) domain.Account {
	t.Helper()

	hash, err := cryptox.HashPassword("admin-secret-1")
	require.NoError(t, err)

	now := time.Now().UTC()
	account := domain.Account{
		ID:           idx.New().String(),
		Email:        "admin@club.example",
		PasswordHash: hash,
		DisplayName:  "Admin",
		Role:         domain.RoleAdmin,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, e.store.Accounts().CreateAccount(context.Background(), account))
	return account
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T, email, password string) (string, domain.SessionView) {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/v1/session", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token   string             `json:"token"`
		Account domain.SessionView `json:"account"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.Account
}

func TestLoginSetsSessionCookie(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t)

	rec := env.do(t, http.MethodPost, "/v1/session", map[string]string{
		"email":    "admin@club.example",
		"password": "admin-secret-1",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, DefaultCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.NotEmpty(t, cookies[0].Value)

	// The body never carries the password hash.
	assert.NotContains(t, rec.Body.String(), "argon2id")
}

func TestLoginRejectsBadPassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t)

	rec := env.do(t, http.MethodPost, "/v1/session", map[string]string{
		"email":    "admin@club.example",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionInfoRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/v1/session", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionInfoReturnsClaims(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedAdmin(t)

	token, _ := env.login(t, "admin@club.example", "admin-secret-1")

	rec := env.do(t, http.MethodGet, "/v1/session", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var claims domain.AuthorizationClaims
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &claims))
	assert.Equal(t, admin.ID, claims.AccountID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestSessionCookieAuthenticates(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t)

	token, _ := env.login(t, "admin@club.example", "admin-secret-1")

	req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: token})
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInvitationFlow(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t)
	adminToken, _ := env.login(t, "admin@club.example", "admin-secret-1")

	// Admin mints an invitation.
	rec := env.do(t, http.MethodPost, "/v1/invitations", map[string]any{
		"email": "coach@club.example",
		"role":  "coach",
	}, adminToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID    string `json:"id"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.Token)

	// The invitee redeems it and is logged straight in.
	rec = env.do(t, http.MethodPost, "/v1/invitations/redeem", map[string]string{
		"token":    created.Token,
		"password": "coach-secret-1",
		"name":     "New Coach",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var redeemed struct {
		Token   string             `json:"token"`
		Account domain.SessionView `json:"account"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &redeemed))
	assert.Equal(t, domain.RoleCoach, redeemed.Account.Role)

	// The list shows it as used, without the raw token.
	rec = env.do(t, http.MethodGet, "/v1/invitations", nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Token  string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Used", list[0].Status)
	assert.Empty(t, list[0].Token)

	// A second redemption fails.
	rec = env.do(t, http.MethodPost, "/v1/invitations/redeem", map[string]string{
		"token":    created.Token,
		"password": "other-secret-1",
		"name":     "Imposter",
	}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestInvitationCreateDeniedForCoach(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t)
	adminToken, _ := env.login(t, "admin@club.example", "admin-secret-1")

	// Mint and redeem a coach invitation first.
	rec := env.do(t, http.MethodPost, "/v1/invitations", map[string]any{
		"email": "coach@club.example",
		"role":  "coach",
	}, adminToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = env.do(t, http.MethodPost, "/v1/invitations/redeem", map[string]string{
		"token":    created.Token,
		"password": "coach-secret-1",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	coachToken, _ := env.login(t, "coach@club.example", "coach-secret-1")
	rec = env.do(t, http.MethodPost, "/v1/invitations", map[string]any{
		"email": "viewer@club.example",
		"role":  "viewer",
	}, coachToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRegistrationAndApprovalFlow(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t)

	now := time.Now().UTC()
	player := domain.Player{ID: idx.New().String(), FullName: "Anna Karlsson", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, env.store.Players().CreatePlayer(context.Background(), player))

	// Self-registration lands in the pending queue.
	rec := env.do(t, http.MethodPost, "/v1/register", map[string]string{
		"email":    "anna@club.example",
		"password": "anna-secret-1",
		"name":     "Karlsson, Anna",
	}, "")
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())

	var reg struct {
		AccountID string `json:"account_id"`
		Status    string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reg))
	assert.Equal(t, "pending", reg.Status)

	// No login while pending.
	rec = env.do(t, http.MethodPost, "/v1/session", map[string]string{
		"email":    "anna@club.example",
		"password": "anna-secret-1",
	}, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Admin sees and approves the registration.
	adminToken, _ := env.login(t, "admin@club.example", "admin-secret-1")

	rec = env.do(t, http.MethodGet, "/v1/registrations", nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var pending []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, reg.AccountID, pending[0].ID)

	rec = env.do(t, http.MethodPost, "/v1/registrations/"+reg.AccountID+"/approve", nil, adminToken)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Approved accounts log in.
	_, account := env.login(t, "anna@club.example", "anna-secret-1")
	assert.Equal(t, domain.RolePlayer, account.Role)
}

func TestRegistrationWithoutRosterMatch(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/v1/register", map[string]string{
		"email":    "ghost@club.example",
		"password": "ghost-secret-1",
		"name":     "Nobody Known",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLivez(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/livez", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestReadyz(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/readyz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
