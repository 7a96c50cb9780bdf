package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/matchdayhq/rosterd/internal/roster/domain"
	"github.com/matchdayhq/rosterd/internal/roster/service"
	"github.com/matchdayhq/rosterd/pkg/httpx"
)

// InvitationsHandler serves the admin-facing invitation endpoints.
type InvitationsHandler struct {
	Invitations *service.InvitationService
}

type createInvitationRequest struct {
	Email  string  `json:"email"`
	Role   string  `json:"role"`
	TeamID *string `json:"team_id,omitempty"`
}

type invitationResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	TeamID    *string   `json:"team_id,omitempty"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`

	// Token carries the raw invitation token and is only present on create.
	Token string `json:"token,omitempty"`
}

func invitationView(inv domain.Invitation, token string, now time.Time) invitationResponse {
	return invitationResponse{
		ID:        inv.ID,
		Email:     inv.Email,
		Role:      string(inv.Role),
		TeamID:    inv.TeamID,
		Status:    string(inv.StatusAt(now)),
		ExpiresAt: inv.ExpiresAt,
		CreatedAt: inv.CreatedAt,
		Token:     token,
	}
}

func (h *InvitationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	var req createInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.Email == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "email is required")
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "unknown role")
		return
	}

	inv, token, err := h.Invitations.Issue(r.Context(), claims, req.Email, role, req.TeamID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, invitationView(inv, token, time.Now().UTC()))
}

func (h *InvitationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	invitations, err := h.Invitations.List(r.Context(), claims)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	now := time.Now().UTC()
	out := make([]invitationResponse, 0, len(invitations))
	for _, inv := range invitations {
		out = append(out, invitationView(inv, "", now))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *InvitationsHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "invitation id is required")
		return
	}

	if err := h.Invitations.Revoke(r.Context(), claims, id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RedeemHandler is the public endpoint an invitee hits with their token.
// Success logs the new account straight in.
type RedeemHandler struct {
	Invitations  *service.InvitationService
	Sessions     *service.SessionService
	Issuer       string
	CookieName   string
	CookieSecure bool
}

type redeemRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *RedeemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.Token == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "token and password are required")
		return
	}

	account, err := h.Invitations.Redeem(r.Context(), req.Token, req.Password, req.Name)
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
	httpx.WriteJSON(w, http.StatusCreated, sessionResponse{Token: token, Account: account.View()})
}
