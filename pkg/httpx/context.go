package httpx

import "context"

type ctxKey string

const (
	// CtxKeySubject holds the token subject (username) set by AuthnMiddleware.
	CtxKeySubject ctxKey = "subject"
	// CtxKeyClaims holds the full jwtx.Claims if a handler needs more.
	CtxKeyClaims ctxKey = "claims"
)

// SubjectFromCtx returns the authenticated subject, or "" when the request
// did not pass through AuthnMiddleware.
func SubjectFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeySubject).(string); ok {
		return v
	}
	return ""
}
