package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/hatchery/hatchd/pkg/jwtx"
	"github.com/hatchery/hatchd/pkg/slogx"
)

// AuthnMiddleware enforces bearer authentication. A missing header is
// reported separately from a bad token, but every flavour of bad token
// (malformed, bad signature, expired, no subject) gets one identical
// message so callers learn nothing about why verification failed.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				Unauthorized(w, "Not authenticated")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				Unauthorized(w, "Could not validate credentials")
				return
			}

			if claims.Subject == "" {
				log.Warn("token missing subject")
				Unauthorized(w, "Could not validate credentials")
				return
			}

			ctx = contextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeySubject, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}
