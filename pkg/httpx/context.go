package httpx

import "context"

type ctxKey string

const (
	// CtxKeyAccountID is the authenticated account's ID.
	CtxKeyAccountID ctxKey = "account_id"
)

// ContextWithAccountID stores the authenticated account ID for downstream
// handlers and rate limiters.
func ContextWithAccountID(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, CtxKeyAccountID, accountID)
}

// AccountIDFromContext returns the authenticated account ID, or "".
func AccountIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyAccountID).(string); ok {
		return v
	}
	return ""
}
