package user

type Permission string

const (
	// Punch capture
	PermissionPunchCreate Permission = "punch.create"

	// Attendance tables and raw events
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceViewAll Permission = "attendance.view_all"

	// Vacations, holidays, absences, medical leave
	PermissionExceptionManage Permission = "exception.manage"

	// Worker and sector registry
	PermissionWorkerViewAll Permission = "worker.view_all"
	PermissionWorkerManage  Permission = "worker.manage"
	PermissionSectorManage  Permission = "sector.manage"

	// Reports
	PermissionReportsExport Permission = "reports.export"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleSuperAdmin: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionExceptionManage,
		PermissionWorkerViewAll,
		PermissionWorkerManage,
		PermissionSectorManage,
		PermissionReportsExport,
	},
	RoleAdmin: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionExceptionManage,
		PermissionWorkerViewAll,
		PermissionWorkerManage,
		PermissionReportsExport,
	},
	RoleUser: {
		PermissionAttendanceViewOwn,
		PermissionReportsExport,
	},
	RoleTerminal: {
		PermissionPunchCreate,
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
