package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"

	// Vacation Management
	PermissionVacationViewOwn Permission = "vacation.view_own"
	PermissionVacationCreate  Permission = "vacation.create"
	PermissionVacationViewAll Permission = "vacation.view_all"
	PermissionVacationReview  Permission = "vacation.review"

	// Holidays
	PermissionHolidayManage Permission = "holiday.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleManager: {
		// Manager reviews and views team data, and may still take vacation
		PermissionViewOwnProfile,
		PermissionVacationViewOwn,
		PermissionVacationCreate,
		PermissionVacationViewAll,
		PermissionVacationReview,
		PermissionHolidayManage,
	},
	RoleEmployee: {
		// Employee has basic access
		PermissionViewOwnProfile,
		PermissionVacationViewOwn,
		PermissionVacationCreate,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
