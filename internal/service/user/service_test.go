package user

import (
	"context"
	"testing"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/user"
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/validator"
	"github.com/ghiras-nahda/hris-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(t *testing.T) user.UserService {
	t.Helper()
	repo := memory.NewUserRepository(memory.NewDB())
	_, err := repo.Create(context.Background(), user.User{
		ID:        "u1",
		Name:      "System Admin",
		Username:  "admin",
		Password:  "123",
		Role:      user.RoleAdmin,
		Protected: true,
	})
	require.NoError(t, err)
	return NewUserService(repo)
}

func validCreateRequest() user.CreateUserRequest {
	return user.CreateUserRequest{
		Name:         "Huda Saleh",
		Username:     "huda",
		Password:     "secret",
		Email:        "huda@ghiras-nahda.org",
		ManagerEmail: "hr@ghiras-nahda.org",
	}
}

func TestUserService_Create_AppliesDefaults(t *testing.T) {
	svc := newTestUserService(t)

	created, err := svc.Create(context.Background(), validCreateRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, user.RoleEmployee, created.Role)
	assert.Equal(t, string(user.DepartmentAdministration), created.Department)
	assert.Equal(t, user.DefaultAnnualBalance, created.TotalAnnualBalance)
}

func TestUserService_Create_DuplicateUsername(t *testing.T) {
	svc := newTestUserService(t)
	req := validCreateRequest()
	req.Username = "admin"

	_, err := svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, user.ErrUsernameExists)
}

func TestUserService_Create_Invalid(t *testing.T) {
	svc := newTestUserService(t)
	req := validCreateRequest()
	req.Email = "not-an-email"
	req.Role = "owner"

	_, err := svc.Create(context.Background(), req)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "role")
}

func TestUserService_Update_KeepsPasswordWhenOmitted(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository(memory.NewDB())
	svc := NewUserService(repo)

	created, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, user.UpdateUserRequest{
		ID:                 created.ID,
		Name:               "Huda S.",
		Username:           "huda",
		Email:              "huda@ghiras-nahda.org",
		Role:               user.RoleManager,
		Department:         user.DepartmentHR,
		TotalAnnualBalance: 25,
		ManagerEmail:       "board@ghiras-nahda.org",
	})
	require.NoError(t, err)
	assert.Equal(t, user.RoleManager, updated.Role)
	assert.Equal(t, 25, updated.TotalAnnualBalance)

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "secret", stored.Password)
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc := newTestUserService(t)

	_, err := svc.Update(context.Background(), user.UpdateUserRequest{
		ID:           "missing",
		Name:         "Nobody",
		Username:     "nobody",
		Email:        "nobody@ghiras-nahda.org",
		Role:         user.RoleEmployee,
		Department:   user.DepartmentHR,
		ManagerEmail: "hr@ghiras-nahda.org",
	})

	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := newTestUserService(t)

	assert.ErrorIs(t, svc.Delete(ctx, "u1"), user.ErrProtectedAccount)

	created, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserService_List_Search(t *testing.T) {
	ctx := context.Background()
	svc := newTestUserService(t)
	_, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	all, err := svc.List(ctx, user.UserFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := svc.List(ctx, user.UserFilter{Search: "huda"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "huda", found[0].Username)
}

func TestUserService_Lookups(t *testing.T) {
	svc := newTestUserService(t)

	lookups := svc.Lookups(context.Background())

	codes := make([]string, 0, len(lookups.Roles))
	for _, r := range lookups.Roles {
		assert.NotEmpty(t, r.Label)
		codes = append(codes, r.Code)
	}
	assert.Equal(t, []string{"employee", "manager", "admin"}, codes)

	require.Len(t, lookups.Departments, 6)
	assert.Equal(t, user.Option{Code: "meal", Label: user.DepartmentMEAL.Label()}, lookups.Departments[5])
}
