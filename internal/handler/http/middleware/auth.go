package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/vacation-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/vacation-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rebuilds the caller's auth.Session from the access token
// verified by jwtauth.Verifier and stores it in the request context.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != jwt.TokenTypeAccess || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			rawToken := jwtauth.TokenFromHeader(r)
			if jwtService.IsTokenRevoked(rawToken) {
				response.HandleError(w, auth.ErrTokenRevoked)
				return
			}

			userID, _ := claims["user_id"].(string)
			role, _ := claims["role"].(string)
			if userID == "" || !user.Role(role).IsValid() {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			registrationNumber, _ := claims["registration_number"].(string)
			name, _ := claims["name"].(string)

			session := auth.Session{
				UserID:             userID,
				RegistrationNumber: registrationNumber,
				Name:               name,
				Role:               user.Role(role),
				Token:              rawToken,
			}
			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), session)))
		}
		return http.HandlerFunc(hfn)
	}
}
