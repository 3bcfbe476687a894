package middleware

import (
	"net/http"
	"slices"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"github.com/emporia-hr/emporia-backend-go/internal/handler/http/response"
)

// RequirePermission passes when the caller's role holds any of perms.
func RequirePermission(perms ...user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := user.ActorFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Not authorized to access this route")
				return
			}

			if !actor.HasAnyPermission(perms...) {
				response.Forbidden(w, "You do not have permission to perform this action")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole passes when the caller's role kind is one of kinds.
func RequireRole(kinds ...user.RoleKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := user.ActorFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Not authorized to access this route")
				return
			}

			if !slices.Contains(kinds, actor.Kind()) {
				response.Forbidden(w, "You do not have permission to perform this action")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
