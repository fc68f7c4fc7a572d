package http

import (
	"context"
	"net/http"
	"strings"

	"clubsphere-backend/internal/domain"
	"clubsphere-backend/internal/security"
)

type contextKey string

const sessionKey contextKey = "session"

// AuthMiddleware validates the bearer token and stores the resulting
// Session in the request context. Handlers read it back with
// SessionFromContext; downstream services receive it explicitly and never
// look at the token again.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearer(r)
			if token == "" {
				writeError(w, domain.ErrUnauthorized)
				return
			}

			claims, err := tokens.ValidateToken(token)
			if err != nil {
				writeError(w, err)
				return
			}
			if claims.Type != security.TokenTypeAccess {
				writeError(w, security.ErrWrongTokenType)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, claims.Session())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the authenticated session, or an invalid
// zero session when the middleware did not run.
func SessionFromContext(ctx context.Context) *domain.Session {
	if sess, ok := ctx.Value(sessionKey).(*domain.Session); ok {
		return sess
	}
	return &domain.Session{}
}

func extractBearer(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return auth[7:]
	}
	return auth
}
