package auth

import (
	"context"
	"time"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/user"
)

// Session is the lifetime of one login: created on login, removed on logout or expiry.
type Session struct {
	ID        string
	UserID    string
	StartedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Principal is the authenticated caller of a request.
type Principal struct {
	Session Session
	User    user.User
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal stored by WithPrincipal.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
