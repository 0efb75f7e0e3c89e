package middleware

import (
	"net/http"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/auth"
	"github.com/ghiras-nahda/hris-backend-go/internal/handler/http/response"
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired accepts only live access tokens and places the resolved
// principal on the request context. It must run after jwtauth.Verifier.
func AuthRequired(authService auth.AuthService, jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != jwt.TokenTypeAccess || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if jwtService.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			sessionID, ok := claims["session_id"].(string)
			if !ok || sessionID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			principal, err := authService.Authenticate(r.Context(), sessionID)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		}
		return http.HandlerFunc(hfn)
	}
}
