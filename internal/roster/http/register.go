package http

import (
	"encoding/json"
	"net/http"

	"github.com/matchdayhq/rosterd/internal/roster/service"
	"github.com/matchdayhq/rosterd/pkg/httpx"
)

type RegisterHandler struct {
	Registrations *service.RegistrationService
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type registerResponse struct {
	AccountID string `json:"account_id"`
	Status    string `json:"status"`
}

// ServeHTTP handles player self-registration. The created account is
// pending until an admin approves it, which the response makes explicit.
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "email, password and name are required")
		return
	}

	account, err := h.Registrations.RegisterPlayer(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusAccepted, registerResponse{
		AccountID: account.ID,
		Status:    string(account.Status),
	})
}
