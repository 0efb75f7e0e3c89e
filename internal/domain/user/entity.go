package user

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleEmployee Role = "employee" // Regular employee
	RoleManager  Role = "manager"  // Department manager, approves requests routed to them
	RoleAdmin    Role = "admin"    // System administrator - full access
)

// Roles lists every role in display order.
var Roles = []Role{RoleEmployee, RoleManager, RoleAdmin}

func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Label returns the display name used by the client.
func (r Role) Label() string {
	switch r {
	case RoleEmployee:
		return "موظف"
	case RoleManager:
		return "مدير قسم"
	case RoleAdmin:
		return "مسؤول نظام"
	default:
		panic(fmt.Sprintf("user: unhandled role %q", string(r)))
	}
}

type Department string

const (
	DepartmentAdministration Department = "administration"
	DepartmentHR             Department = "hr"
	DepartmentFinance        Department = "finance"
	DepartmentPrograms       Department = "programs"
	DepartmentMedia          Department = "media"
	DepartmentMEAL           Department = "meal" // monitoring, evaluation, accountability and learning
)

var Departments = []Department{
	DepartmentAdministration,
	DepartmentHR,
	DepartmentFinance,
	DepartmentPrograms,
	DepartmentMedia,
	DepartmentMEAL,
}

func (d Department) Valid() bool {
	switch d {
	case DepartmentAdministration, DepartmentHR, DepartmentFinance,
		DepartmentPrograms, DepartmentMedia, DepartmentMEAL:
		return true
	}
	return false
}

func (d Department) Label() string {
	switch d {
	case DepartmentAdministration:
		return "إدارة الإدارة العامة"
	case DepartmentHR:
		return "قسم الموارد البشرية"
	case DepartmentFinance:
		return "القسم المالي"
	case DepartmentPrograms:
		return "قسم البرامج"
	case DepartmentMedia:
		return "القسم الإعلامي"
	case DepartmentMEAL:
		return "قسم الرصد والتقييم والمساءلة والتعلم"
	default:
		panic(fmt.Sprintf("user: unhandled department %q", string(d)))
	}
}

// DefaultAnnualBalance is applied to new accounts that do not specify one.
const DefaultAnnualBalance = 21

type User struct {
	ID                 string
	Name               string
	Username           string
	Password           string
	Email              string
	Role               Role
	Department         Department
	Avatar             string
	TotalAnnualBalance int
	// ManagerEmail is the routing target for this user's leave requests.
	ManagerEmail string
	// Protected accounts cannot be deleted.
	Protected bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin checks if user is a system administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager checks if user is manager or admin
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}
