package user

import (
	"context"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	ListByEmail(ctx context.Context, email string) ([]User, error)
	List(ctx context.Context, filter UserFilter) ([]User, error)
	Create(ctx context.Context, newUser User) (User, error)
	Update(ctx context.Context, updated User) (User, error)
	Delete(ctx context.Context, id string) error
}
