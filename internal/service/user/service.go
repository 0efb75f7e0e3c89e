package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/user"
)

type UserServiceImpl struct {
	user.UserRepository
}

func NewUserService(userRepository user.UserRepository) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepository,
	}
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, filter user.UserFilter) ([]user.UserResponse, error) {
	users, err := s.UserRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.NewUserResponse(u))
	}
	return responses, nil
}

// Get implements user.UserService.
func (s *UserServiceImpl) Get(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	created, err := s.UserRepository.Create(ctx, user.User{
		Name:               strings.TrimSpace(req.Name),
		Username:           strings.TrimSpace(req.Username),
		Password:           req.Password,
		Email:              strings.TrimSpace(req.Email),
		Role:               req.Role,
		Department:         req.Department,
		Avatar:             req.Avatar,
		TotalAnnualBalance: *req.TotalAnnualBalance,
		ManagerEmail:       strings.TrimSpace(req.ManagerEmail),
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("user created", "user_id", created.ID, "username", created.Username, "role", created.Role)
	return user.NewUserResponse(created), nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	existing, err := s.UserRepository.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}

	existing.Name = strings.TrimSpace(req.Name)
	existing.Username = strings.TrimSpace(req.Username)
	existing.Email = strings.TrimSpace(req.Email)
	existing.Role = req.Role
	existing.Department = req.Department
	existing.Avatar = req.Avatar
	existing.TotalAnnualBalance = req.TotalAnnualBalance
	existing.ManagerEmail = strings.TrimSpace(req.ManagerEmail)
	if req.Password != nil {
		existing.Password = *req.Password
	}

	updated, err := s.UserRepository.Update(ctx, existing)
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("user updated", "user_id", updated.ID)
	return user.NewUserResponse(updated), nil
}

// Delete implements user.UserService.
func (s *UserServiceImpl) Delete(ctx context.Context, id string) error {
	existing, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Protected {
		return user.ErrProtectedAccount
	}

	if err := s.UserRepository.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("user deleted", "user_id", id)
	return nil
}

// Lookups implements user.UserService.
func (s *UserServiceImpl) Lookups(ctx context.Context) user.LookupsResponse {
	return user.NewLookupsResponse()
}
