package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleTerminal, PermissionPunchCreate))
	assert.False(t, HasPermission(RoleTerminal, PermissionAttendanceViewAll))
	assert.False(t, HasPermission(RoleAdmin, PermissionPunchCreate))
	assert.True(t, HasPermission(RoleAdmin, PermissionExceptionManage))
	assert.False(t, HasPermission(RoleAdmin, PermissionSectorManage))
	assert.True(t, HasPermission(RoleSuperAdmin, PermissionSectorManage))
	assert.True(t, HasPermission(RoleUser, PermissionAttendanceViewOwn))
	assert.False(t, HasPermission(RoleUser, PermissionAttendanceViewAll))
	assert.False(t, HasPermission(Role("owner"), PermissionAttendanceViewOwn))
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleSuperAdmin.Valid())
	assert.True(t, RoleTerminal.Valid())
	assert.False(t, Role("pending").Valid())
	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleUser.IsAdmin())
}
