package user

import (
	"strings"
	"time"

	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Username           string `json:"username"`
	Email              string `json:"email"`
	Role               Role   `json:"role"`
	RoleLabel          string `json:"role_label"`
	Department         string `json:"department"`
	DepartmentLabel    string `json:"department_label"`
	Avatar             string `json:"avatar,omitempty"`
	TotalAnnualBalance int    `json:"total_annual_balance"`
	ManagerEmail       string `json:"manager_email"`
	Protected          bool   `json:"protected"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Username:           u.Username,
		Email:              u.Email,
		Role:               u.Role,
		RoleLabel:          u.Role.Label(),
		Department:         string(u.Department),
		DepartmentLabel:    u.Department.Label(),
		Avatar:             u.Avatar,
		TotalAnnualBalance: u.TotalAnnualBalance,
		ManagerEmail:       u.ManagerEmail,
		Protected:          u.Protected,
		CreatedAt:          u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          u.UpdatedAt.Format(time.RFC3339),
	}
}

// Option is a code with its display label.
type Option struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// LookupsResponse lists the roles and departments a client can pick from.
type LookupsResponse struct {
	Roles       []Option `json:"roles"`
	Departments []Option `json:"departments"`
}

func NewLookupsResponse() LookupsResponse {
	resp := LookupsResponse{
		Roles:       make([]Option, 0, len(Roles)),
		Departments: make([]Option, 0, len(Departments)),
	}
	for _, r := range Roles {
		resp.Roles = append(resp.Roles, Option{Code: string(r), Label: r.Label()})
	}
	for _, d := range Departments {
		resp.Departments = append(resp.Departments, Option{Code: string(d), Label: d.Label()})
	}
	return resp
}

// UserFilter narrows List results. Search matches name or username, case-insensitively.
type UserFilter struct {
	Search string
}

func (f UserFilter) Matches(u User) bool {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(u.Name), q) ||
		strings.Contains(strings.ToLower(u.Username), q)
}

// CreateUserRequest represents request to create a new account
type CreateUserRequest struct {
	Name               string     `json:"name"`
	Username           string     `json:"username"`
	Password           string     `json:"password"`
	Email              string     `json:"email"`
	Role               Role       `json:"role"`
	Department         Department `json:"department"`
	Avatar             string     `json:"avatar"`
	TotalAnnualBalance *int       `json:"total_annual_balance,omitempty"`
	ManagerEmail       string     `json:"manager_email"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	} else if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username may only contain 3-50 letters, numbers, dots, underscores, and hyphens",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	errs = append(errs, validateEmail("email", r.Email)...)
	errs = append(errs, validateEmail("manager_email", r.ManagerEmail)...)

	if r.Role == "" {
		r.Role = RoleEmployee
	} else if !r.Role.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: employee, manager, admin",
		})
	}

	if r.Department == "" {
		r.Department = DepartmentAdministration
	} else if !r.Department.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "unknown department",
		})
	}

	if r.TotalAnnualBalance == nil {
		balance := DefaultAnnualBalance
		r.TotalAnnualBalance = &balance
	} else if *r.TotalAnnualBalance < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "total_annual_balance",
			Message: "total_annual_balance must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateUserRequest replaces editable account fields. A nil password keeps the current one.
type UpdateUserRequest struct {
	ID                 string     `json:"-"`
	Name               string     `json:"name"`
	Username           string     `json:"username"`
	Password           *string    `json:"password,omitempty"`
	Email              string     `json:"email"`
	Role               Role       `json:"role"`
	Department         Department `json:"department"`
	Avatar             string     `json:"avatar"`
	TotalAnnualBalance int        `json:"total_annual_balance"`
	ManagerEmail       string     `json:"manager_email"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username may only contain 3-50 letters, numbers, dots, underscores, and hyphens",
		})
	}

	if r.Password != nil && validator.IsEmpty(*r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must not be empty",
		})
	}

	errs = append(errs, validateEmail("email", r.Email)...)
	errs = append(errs, validateEmail("manager_email", r.ManagerEmail)...)

	if !r.Role.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: employee, manager, admin",
		})
	}

	if !r.Department.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "unknown department",
		})
	}

	if r.TotalAnnualBalance < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "total_annual_balance",
			Message: "total_annual_balance must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateEmail(field, value string) validator.ValidationErrors {
	if validator.IsEmpty(value) {
		return validator.Single(field, field+" is required")
	}
	if !validator.IsValidEmail(value) {
		return validator.Single(field, "invalid email format")
	}
	return nil
}
