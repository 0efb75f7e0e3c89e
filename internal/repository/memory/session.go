package memory

import (
	"context"
	"time"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/auth"
)

type sessionRepositoryImpl struct {
	db *DB
}

func NewSessionRepository(db *DB) auth.SessionRepository {
	return &sessionRepositoryImpl{db: db}
}

// Create implements auth.SessionRepository.
func (r *sessionRepositoryImpl) Create(ctx context.Context, session auth.Session) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[session.ID] = session
	return nil
}

// GetByID implements auth.SessionRepository.
func (r *sessionRepositoryImpl) GetByID(ctx context.Context, id string) (auth.Session, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	s, ok := r.db.sessions[id]
	if !ok {
		return auth.Session{}, auth.ErrSessionNotFound
	}
	return s, nil
}

// Delete implements auth.SessionRepository.
func (r *sessionRepositoryImpl) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.sessions[id]; !ok {
		return auth.ErrSessionNotFound
	}
	delete(r.db.sessions, id)
	return nil
}

// DeleteExpired implements auth.SessionRepository.
func (r *sessionRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	removed := 0
	for id, s := range r.db.sessions {
		if s.Expired(now) {
			delete(r.db.sessions, id)
			removed++
		}
	}
	return removed, nil
}
