package auth

import (
	"context"
	"time"
)

type SessionRepository interface {
	Create(ctx context.Context, session Session) error
	GetByID(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes sessions that expired at or before now and reports how many.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
