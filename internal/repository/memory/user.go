package memory

import (
	"context"
	"strings"
	"time"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/user"
)

type userRepositoryImpl struct {
	db *DB
}

func NewUserRepository(db *DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

// Create implements user.UserRepository. An empty ID is generated.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if newUser.ID == "" {
		newUser.ID = newID()
	}
	if _, exists := r.db.users[newUser.ID]; exists {
		return user.User{}, user.ErrUsernameExists
	}
	if r.usernameTakenLocked(newUser.Username, "") {
		return user.User{}, user.ErrUsernameExists
	}

	now := time.Now()
	if newUser.CreatedAt.IsZero() {
		newUser.CreatedAt = now
	}
	newUser.UpdatedAt = now

	r.db.users[newUser.ID] = newUser
	r.db.userOrder = append(r.db.userOrder, newUser.ID)
	return newUser, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

// GetByUsername implements user.UserRepository.
func (r *userRepositoryImpl) GetByUsername(ctx context.Context, username string) (user.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, id := range r.db.userOrder {
		if u := r.db.users[id]; u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

// ListByEmail implements user.UserRepository.
func (r *userRepositoryImpl) ListByEmail(ctx context.Context, email string) ([]user.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var result []user.User
	for _, id := range r.db.userOrder {
		if u := r.db.users[id]; strings.EqualFold(u.Email, email) {
			result = append(result, u)
		}
	}
	return result, nil
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context, filter user.UserFilter) ([]user.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	result := make([]user.User, 0, len(r.db.userOrder))
	for _, id := range r.db.userOrder {
		if u := r.db.users[id]; filter.Matches(u) {
			result = append(result, u)
		}
	}
	return result, nil
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, updated user.User) (user.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.users[updated.ID]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	if r.usernameTakenLocked(updated.Username, updated.ID) {
		return user.User{}, user.ErrUsernameExists
	}

	updated.CreatedAt = existing.CreatedAt
	updated.Protected = existing.Protected
	updated.UpdatedAt = time.Now()
	r.db.users[updated.ID] = updated
	return updated, nil
}

// Delete implements user.UserRepository.
func (r *userRepositoryImpl) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	if u.Protected {
		return user.ErrProtectedAccount
	}
	delete(r.db.users, id)
	for i, uid := range r.db.userOrder {
		if uid == id {
			r.db.userOrder = append(r.db.userOrder[:i], r.db.userOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (r *userRepositoryImpl) usernameTakenLocked(username, exceptID string) bool {
	for id, u := range r.db.users {
		if id != exceptID && strings.EqualFold(u.Username, username) {
			return true
		}
	}
	return false
}
