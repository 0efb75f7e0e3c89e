package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Logout(ctx context.Context, sessionID string) error
	// Authenticate resolves a live session into the acting principal.
	Authenticate(ctx context.Context, sessionID string) (Principal, error)
	SweepExpiredSessions(ctx context.Context) error
}
