package fixtures

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/user"
	"gopkg.in/yaml.v3"
)

// ==========================================
// BUILT-IN ACCOUNTS
// ==========================================

const RootAdminID = "u1"

// RootAdmin is the single account the system starts with. It cannot be deleted.
func RootAdmin() user.User {
	return user.User{
		ID:                 RootAdminID,
		Name:               "المسؤول العام - غراس النهضة",
		Username:           "admin",
		Password:           "123",
		Email:              "admin@ghiras-nahda.org",
		Role:               user.RoleAdmin,
		Department:         user.DepartmentAdministration,
		TotalAnnualBalance: 30,
		ManagerEmail:       "board@ghiras-nahda.org",
		Protected:          true,
	}
}

// ==========================================
// SEED FILE
// ==========================================

// SeedFile is the YAML document listing extra accounts to create at startup.
type SeedFile struct {
	Users []SeedUser `yaml:"users"`
}

type SeedUser struct {
	Name               string `yaml:"name"`
	Username           string `yaml:"username"`
	Password           string `yaml:"password"`
	Email              string `yaml:"email"`
	Role               string `yaml:"role"`
	Department         string `yaml:"department"`
	Avatar             string `yaml:"avatar"`
	TotalAnnualBalance *int   `yaml:"total_annual_balance"`
	ManagerEmail       string `yaml:"manager_email"`
}

func (u SeedUser) request() user.CreateUserRequest {
	return user.CreateUserRequest{
		Name:               u.Name,
		Username:           u.Username,
		Password:           u.Password,
		Email:              u.Email,
		Role:               user.Role(strings.ToLower(u.Role)),
		Department:         user.Department(strings.ToLower(u.Department)),
		Avatar:             u.Avatar,
		TotalAnnualBalance: u.TotalAnnualBalance,
		ManagerEmail:       u.ManagerEmail,
	}
}

// LoadSeedFile parses the seed document at path.
func LoadSeedFile(path string) (*SeedFile, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(buf, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &seed, nil
}

// Seed creates the root admin and, when seedPath is set, every account in the
// seed file. Seed accounts go through the same validation as the admin API.
func Seed(ctx context.Context, users user.UserService, repo user.UserRepository, seedPath string) error {
	if _, err := repo.Create(ctx, RootAdmin()); err != nil {
		return fmt.Errorf("failed to create root admin: %w", err)
	}

	if seedPath == "" {
		return nil
	}

	seed, err := LoadSeedFile(seedPath)
	if err != nil {
		return err
	}

	for i, u := range seed.Users {
		if _, err := users.Create(ctx, u.request()); err != nil {
			return fmt.Errorf("seed user %d (%s): %w", i+1, u.Username, err)
		}
	}

	slog.Info("seed file loaded", "path", seedPath, "users", len(seed.Users))
	return nil
}
