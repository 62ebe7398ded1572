package http

import (
	"context"
	"net/http"

	"github.com/musfiqshanta/launchmybiz-backend/internal/auth"
	"github.com/musfiqshanta/launchmybiz-backend/internal/domain"
	"github.com/musfiqshanta/launchmybiz-backend/internal/repository"
)

type contextKey string

const adminContextKey contextKey = "admin"

const authCookieName = "token"

// AdminAuthMiddleware authenticates back-office requests from the JWT session
// cookie and loads the admin account into the request context.
func AdminAuthMiddleware(tokens *auth.TokenManager, admins repository.AdminRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(authCookieName)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "unauthorized", "No token found in cookies")
				return
			}

			claims, err := tokens.Verify(cookie.Value)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			admin, err := admins.GetAdminByID(r.Context(), claims.ID)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "unauthorized", "Admin not found")
				return
			}

			ctx := context.WithValue(r.Context(), adminContextKey, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func adminFromContext(ctx context.Context) *domain.Admin {
	if admin, ok := ctx.Value(adminContextKey).(*domain.Admin); ok {
		return admin
	}
	return nil
}
