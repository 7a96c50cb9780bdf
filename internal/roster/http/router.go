package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/matchdayhq/rosterd/internal/roster/service"
	"github.com/matchdayhq/rosterd/internal/roster/store"
	"github.com/matchdayhq/rosterd/pkg/httpx"
	"github.com/matchdayhq/rosterd/pkg/jwtx"
	"github.com/matchdayhq/rosterd/pkg/slogx"
)

// DefaultCookieName is the session cookie set on login.
const DefaultCookieName = "rosterd_session"

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	issuer       string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	cookieName   string
	cookieSecure bool

	store               store.Store
	SessionService      *service.SessionService
	CredentialsService  *service.CredentialsService
	RegistrationService *service.RegistrationService
	InvitationService   *service.InvitationService
}

type RouterConfig struct {
	Keys         *jwtx.KeySet
	Issuer       string
	BuildVersion string
	CookieName   string
	CookieSecure bool
	Store        store.Store
	Logger       *slog.Logger
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}

	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         cfg.Keys,
		issuer:       cfg.Issuer,
		buildVersion: cfg.BuildVersion,
		startTime:    time.Now(),
		cookieName:   cfg.CookieName,
		cookieSecure: cfg.CookieSecure,
		store:        cfg.Store,
		logger:       cfg.Logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSessions()
	r.registerRegistrations()
	r.registerInvitations()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerSessions() {
	login := &LoginHandler{
		Credentials:  r.CredentialsService,
		Sessions:     r.SessionService,
		Issuer:       r.issuer,
		CookieName:   r.cookieName,
		CookieSecure: r.cookieSecure,
	}

	// POST /v1/session - strict rate limit by IP (authentication attempts)
	r.Mux.Handle("POST /v1/session",
		httpx.Chain(login,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// DELETE /v1/session - just clears the cookie, no auth needed
	logout := &LogoutHandler{CookieName: r.cookieName, CookieSecure: r.cookieSecure}
	r.Mux.Handle("DELETE /v1/session",
		httpx.Chain(logout,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// GET /v1/session - returns the caller's own claims
	whoami := &SessionInfoHandler{}
	r.Mux.Handle("GET /v1/session",
		httpx.Chain(whoami,
			r.requireSession,
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerRegistrations() {
	register := &RegisterHandler{Registrations: r.RegistrationService}

	// POST /v1/register - strict rate limit by IP (public signup endpoint)
	r.Mux.Handle("POST /v1/register",
		httpx.Chain(register,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	approvals := &ApprovalsHandler{Registrations: r.RegistrationService}

	secured := func(h http.Handler) http.Handler {
		return httpx.Chain(h,
			r.requireSession,
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /v1/registrations", secured(http.HandlerFunc(approvals.HandleList)))
	r.Mux.Handle("POST /v1/registrations/{id}/approve", secured(http.HandlerFunc(approvals.HandleApprove)))
	r.Mux.Handle("POST /v1/registrations/{id}/reject", secured(http.HandlerFunc(approvals.HandleReject)))
}

func (r *Router) registerInvitations() {
	h := &InvitationsHandler{Invitations: r.InvitationService}

	secured := func(handler http.Handler) http.Handler {
		return httpx.Chain(handler,
			r.requireSession,
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /v1/invitations", secured(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("GET /v1/invitations", secured(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("DELETE /v1/invitations/{id}", secured(http.HandlerFunc(h.HandleRevoke)))

	// POST /v1/invitations/redeem - strict rate limit by IP (public endpoint)
	redeem := &RedeemHandler{
		Invitations:  r.InvitationService,
		Sessions:     r.SessionService,
		Issuer:       r.issuer,
		CookieName:   r.cookieName,
		CookieSecure: r.cookieSecure,
	}
	r.Mux.Handle("POST /v1/invitations/redeem",
		httpx.Chain(redeem,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys))
}

// requireSession reads the session token from the cookie, falling back to a
// Bearer header, verifies it and puts the claims on the context.
func (r *Router) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		token := r.sessionToken(req)
		if token == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
			return
		}

		claims, err := r.SessionService.ReadClaims(req.Context(), token)
		if err != nil {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired session")
			return
		}

		ctx := ContextWithClaims(req.Context(), claims)
		ctx = httpx.ContextWithAccountID(ctx, claims.AccountID)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

func (r *Router) sessionToken(req *http.Request) string {
	if c, err := req.Cookie(r.cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := req.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
