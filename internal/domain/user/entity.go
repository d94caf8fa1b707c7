package user

import "time"

type Role string

const (
	RoleManager  Role = "manager"  // Reviews vacation requests
	RoleEmployee Role = "employee" // Regular employee
)

func (r Role) IsValid() bool {
	return r == RoleManager || r == RoleEmployee
}

type User struct {
	ID                 string
	RegistrationNumber string
	Name               string
	PasswordHash       string
	Role               Role
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsManager checks if user is manager
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// CanReview checks if user can approve or reject vacation requests
func (u *User) CanReview() bool {
	return HasPermission(u.Role, PermissionVacationReview)
}
