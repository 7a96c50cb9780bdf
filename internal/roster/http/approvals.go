package http

import (
	"context"
	"net/http"
	"time"

	"github.com/matchdayhq/rosterd/internal/roster/domain"
	"github.com/matchdayhq/rosterd/internal/roster/service"
	"github.com/matchdayhq/rosterd/pkg/httpx"
)

// ApprovalsHandler serves the registration approval queue.
type ApprovalsHandler struct {
	Registrations *service.RegistrationService
}

type pendingAccount struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	TeamID      *string   `json:"team_id,omitempty"`
	PlayerID    *string   `json:"player_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (h *ApprovalsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	accounts, err := h.Registrations.ListPending(r.Context(), claims)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]pendingAccount, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, pendingAccount{
			ID:          a.ID,
			Email:       a.Email,
			DisplayName: a.DisplayName,
			TeamID:      a.TeamID,
			PlayerID:    a.PlayerID,
			CreatedAt:   a.CreatedAt,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *ApprovalsHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Registrations.Approve)
}

func (h *ApprovalsHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Registrations.Reject)
}

func (h *ApprovalsHandler) decide(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, requester domain.AuthorizationClaims, accountID string) error,
) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	accountID := r.PathValue("id")
	if accountID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "account id is required")
		return
	}

	if err := fn(r.Context(), claims, accountID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
