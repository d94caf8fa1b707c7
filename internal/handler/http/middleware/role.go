package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/vacation-backend-go/internal/handler/http/response"
)

// RequirePermission checks if user has specific permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := auth.SessionFromContext(r.Context())
			if !ok {
				response.HandleError(w, auth.ErrMissingSession)
				return
			}

			if !session.Can(permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, session.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
