package middleware

import (
	"net/http"

	"vendorhub/internal/service"

	"github.com/rs/zerolog"
)

// TenantMiddleware resolves the caller's organization and role and stores
// them as the service actor. It must run after AuthMiddleware.
func TenantMiddleware(orgs service.OrganizationService, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, email, ok := UserFrom(r.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			profile, org, err := orgs.Me(r.Context(), userID, email)
			if err != nil {
				logger.Error().Err(err).Str("user_id", userID).Msg("Failed to resolve tenant")
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			if org == nil {
				http.Error(w, service.ErrNoOrganization.Error(), http.StatusForbidden)
				return
			}
			ctx := service.WithActor(r.Context(), service.Actor{
				UserID:         userID,
				Email:          profile.Email,
				OrganizationID: org.ID,
				Role:           profile.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireWrite rejects callers whose role is read-only.
func RequireWrite(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := service.ActorFrom(r.Context())
		if !ok || !actor.Role.CanWrite() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
