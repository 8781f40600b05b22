package transport

import (
	"context"
	"net/http"
	"strings"

	"brandsmith/internal/models"
)

type userKey struct{}

// UserResolver resolves the caller from a bearer token.
type UserResolver interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// WithUser attaches the calling user id to ctx.
func WithUser(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// UserFromContext returns the calling user id, if present.
func UserFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userKey{}).(uint)
	return id, ok && id != 0
}

// BearerToken extracts the token of an Authorization header.
func BearerToken(header string) string {
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// AuthMiddleware enforces bearer token authentication.
func AuthMiddleware(resolver UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r.Header.Get("Authorization"))
			if token == "" {
				writeJSON(w, http.StatusUnauthorized, errorBody{Error: "missing bearer token"})
				return
			}
			u, err := resolver.Authenticate(r.Context(), token)
			if err != nil || u == nil {
				writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid bearer token"})
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u.ID)))
		})
	}
}

// LocalUserMiddleware runs every request as userID when auth is disabled.
func LocalUserMiddleware(userID uint) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), userID)))
		})
	}
}
