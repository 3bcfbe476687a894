package middleware

import (
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/audit"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"github.com/emporia-hr/emporia-backend-go/internal/handler/http/response"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// Authenticate requires a verified access token (see jwtauth.Verifier) and
// loads its owner into the request context. Deleted and inactive accounts are
// refused even while their token is still valid.
func Authenticate(jwtService jwt.Service, users user.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.Unauthorized(w, "Not authorized to access this route")
				return
			}

			userID, err := jwtService.UserIDFromToken(token)
			if err != nil {
				response.Unauthorized(w, "Not authorized to access this route")
				return
			}

			actor, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					response.Unauthorized(w, "User not found")
					return
				}
				slog.Error("Authenticate user lookup error", "error", err)
				response.ServerError(w, err)
				return
			}

			if actor.IsDeleted {
				response.Unauthorized(w, "User account has been deleted")
				return
			}
			if actor.Status != user.StatusActive {
				response.Unauthorized(w, "User account is inactive")
				return
			}

			ctx := user.WithActor(r.Context(), actor)
			ctx = audit.WithIP(ctx, clientIP(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
