package user

import (
	"context"
)

type UserService interface {
	List(ctx context.Context, filter UserFilter) ([]UserResponse, error)
	Get(ctx context.Context, id string) (UserResponse, error)
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) error
	Lookups(ctx context.Context) LookupsResponse
}
