package httpx

import "context"

type ctxKey string

// CtxKeyUserID carries the authenticated user id resolved from the session
// cookie.
const CtxKeyUserID ctxKey = "user_id"

// UserIDFromContext returns the authenticated user id, or "" if the request
// has no resolved session.
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}

// ContextWithUserID injects the authenticated user id for downstream handlers.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxKeyUserID, userID)
}
