package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/matchdayhq/rosterd/internal/roster/domain"
	"github.com/matchdayhq/rosterd/internal/roster/service"
	"github.com/matchdayhq/rosterd/pkg/httpx"
	"github.com/matchdayhq/rosterd/pkg/jwtx"
)

type LoginHandler struct {
	Credentials  *service.CredentialsService
	Sessions     *service.SessionService
	Issuer       string
	CookieName   string
	CookieSecure bool
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token   string             `json:"token"`
	Account domain.SessionView `json:"account"`
}

// ServeHTTP verifies credentials and establishes a session. The token is
// delivered twice: as an HTTP-only cookie for browsers and in the body for
// API clients.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	account, err := h.Credentials.Verify(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := h.Sessions.Issue(r.Context(), account, h.Issuer)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	setSessionCookie(w, h.CookieName, token, h.CookieSecure)
	httpx.WriteJSON(w, http.StatusOK, sessionResponse{Token: token, Account: account.View()})
}

type LogoutHandler struct {
	CookieName   string
	CookieSecure bool
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Sessions are stateless, so logout is purely cookie removal. The token
	// itself stays valid until expiry.
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// SessionInfoHandler returns the caller's own session claims.
type SessionInfoHandler struct{}

func (h *SessionInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, claims)
}

func setSessionCookie(w http.ResponseWriter, name, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(jwtx.DefaultSessionTTL / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
