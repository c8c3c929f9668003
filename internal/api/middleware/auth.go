package middleware

import (
	"context"
	"net/http"
	"strings"

	"quiz_api/internal/app/service"
	"quiz_api/internal/common"
	"quiz_api/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserCtxKey contextKey = "user"
)

// NewAuthenticator verifies the bearer token found by jwtauth.Verifier and
// resolves its subject to a stored user, which downstream handlers read from
// the request context.
func NewAuthenticator(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				if strings.Contains(err.Error(), "token not found") || token == nil {
					common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
				} else {
					common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
				}
				return
			}

			if token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			user, err := authService.ResolveIdentity(r.Context(), claims)
			if err != nil {
				common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), UserCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUserFromContext(r.Context())
		if !ok || !user.IsAdmin {
			common.RespondWithError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Helper to get the authenticated user from context
func GetUserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(*model.User)
	return user, ok
}
