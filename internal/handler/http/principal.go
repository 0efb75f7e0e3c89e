package http

import (
	"net/http"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/auth"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/user"
)

// currentUser returns the account resolved by middleware.AuthRequired.
func currentUser(r *http.Request) (user.User, bool) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		return user.User{}, false
	}
	return principal.User, true
}
