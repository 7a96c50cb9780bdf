package http

import (
	"errors"
	"net/http"

	"github.com/matchdayhq/rosterd/internal/roster/service"
	"github.com/matchdayhq/rosterd/internal/roster/store"
	"github.com/matchdayhq/rosterd/pkg/httpx"
)

// writeServiceError maps service sentinels onto HTTP statuses. Anything
// unmapped is a 500 with a generic body so internals never leak.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidSession):
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", err.Error())

	case errors.Is(err, service.ErrAccountPending),
		errors.Is(err, service.ErrAccountRejected),
		errors.Is(err, service.ErrPolicyDenied):
		httpx.WriteError(w, http.StatusForbidden, "forbidden", err.Error())

	case errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, service.ErrInvitationNotFound),
		errors.Is(err, service.ErrTeamNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", err.Error())

	case errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrPendingInvitationExists),
		errors.Is(err, service.ErrInvitationAlreadyUsed),
		errors.Is(err, service.ErrAlreadyLinked),
		errors.Is(err, service.ErrInvalidStatusChange):
		httpx.WriteError(w, http.StatusConflict, "conflict", err.Error())

	case errors.Is(err, service.ErrInvitationExpired),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrNoPlayerMatch):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())

	case errors.Is(err, store.ErrUnavailable):
		httpx.WriteError(w, http.StatusServiceUnavailable, "unavailable", "datastore unavailable")

	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
