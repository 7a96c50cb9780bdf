package http

import (
	"context"

	"github.com/matchdayhq/rosterd/internal/roster/domain"
)

type ctxKey string

const ctxKeyClaims ctxKey = "session_claims"

// ContextWithClaims stores the verified session claims for handlers behind
// the session middleware.
func ContextWithClaims(ctx context.Context, claims domain.AuthorizationClaims) context.Context {
	return context.WithValue(ctx, ctxKeyClaims, claims)
}

// ClaimsFromContext returns the verified session claims. The second return
// is false on unauthenticated requests.
func ClaimsFromContext(ctx context.Context) (domain.AuthorizationClaims, bool) {
	claims, ok := ctx.Value(ctxKeyClaims).(domain.AuthorizationClaims)
	return claims, ok
}
