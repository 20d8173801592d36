package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/taxrefund/pkg/slogx"
)

// SessionResolver validates a raw bearer token and returns its principal.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (Principal, error)
}

// SessionMiddleware attaches the principal for a valid bearer token to the
// request context. Requests without a token, or with a bad one, pass through
// anonymously; use RequireSession on routes that need a caller.
func SessionMiddleware(resolver SessionResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			p, err := resolver.ResolveSession(ctx, raw)
			if err != nil {
				slogx.FromContext(ctx).Debug("ignoring invalid session token", "err", err)
				next.ServeHTTP(w, r)
				return
			}

			ctx = WithPrincipal(ctx, p)
			ctx = slogx.WithAttrs(ctx, "user_id", p.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects requests that carry no valid session.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PrincipalFromContext(r.Context()); !ok {
			w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
			WriteError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	return raw, raw != ""
}
