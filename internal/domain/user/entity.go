package user

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"      // Full access across the company
	RoleHR         Role = "hr"         // Manages people and attendance
	RoleAccountant Role = "accountant" // Reads directory data
	RoleStaff      Role = "staff"      // Regular employee
)

var Roles = []Role{RoleAdmin, RoleHR, RoleAccountant, RoleStaff}

type User struct {
	ID                  string
	CompanyID           string
	Email               string
	PasswordHash        string
	Role                Role
	IsActive            bool
	LastLoginAt         *time.Time
	FailedLoginAttempts int
	LockoutEnd          *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// DTO / Join
	EmployeeID *string
	FullName   *string
}

// IsLocked reports whether a lockout is still in effect at now.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockoutEnd != nil && u.LockoutEnd.After(now)
}

// IsAdminOrHR checks if user manages people data
func (u *User) IsAdminOrHR() bool {
	return u.Role == RoleAdmin || u.Role == RoleHR
}

func IsValidRole(r string) bool {
	for _, role := range Roles {
		if string(role) == r {
			return true
		}
	}
	return false
}
