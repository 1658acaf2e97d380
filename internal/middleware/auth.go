package middleware

import (
	"context"
	"net/http"
	"strings"

	"vendorhub/internal/util"

	"github.com/rs/zerolog"
)

// Injected key type to avoid context collisions
type contextKey string

const (
	UserContextKey      = contextKey("user")
	EmailContextKey     = contextKey("email")
	RequestIDContextKey = contextKey("request_id")
)

// AuthMiddleware validates the Supabase bearer token and stores the user id
// and email in the request context. keyMaterial is the HMAC secret or a PEM
// public key.
func AuthMiddleware(keyMaterial string, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn().Str("path", r.URL.Path).Msg("Authorization header missing")
				http.Error(w, "Authorization header missing", http.StatusUnauthorized)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn().Msg("Invalid authorization header")
				http.Error(w, "Invalid authorization header", http.StatusUnauthorized)
				return
			}
			claims, err := util.ValidateJWT(parts[1], keyMaterial)
			if err != nil {
				logger.Warn().Err(err).Msg("Invalid token")
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), UserContextKey, claims.UserID())
			ctx = context.WithValue(ctx, EmailContextKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFrom returns the authenticated user id and email.
func UserFrom(ctx context.Context) (userID, email string, ok bool) {
	userID, ok = ctx.Value(UserContextKey).(string)
	email, _ = ctx.Value(EmailContextKey).(string)
	return userID, email, ok && userID != ""
}
