package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleHR, PermissionAttendanceViewAll))
	assert.True(t, HasPermission(RoleAdmin, PermissionDepartmentManage))
	assert.True(t, HasPermission(RoleStaff, PermissionAttendanceViewTeam))
	assert.False(t, HasPermission(RoleStaff, PermissionAttendanceViewAll))
	assert.False(t, HasPermission(RoleAccountant, PermissionEmployeeManage))
	assert.False(t, HasPermission(Role("guest"), PermissionViewOwnProfile))
}

func TestUser_IsLocked(t *testing.T) {
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	until := now.Add(10 * time.Minute)
	past := now.Add(-time.Second)

	assert.False(t, (&User{}).IsLocked(now))
	assert.True(t, (&User{LockoutEnd: &until}).IsLocked(now))
	assert.False(t, (&User{LockoutEnd: &past}).IsLocked(now))
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole("accountant"))
	assert.False(t, IsValidRole("owner"))
}
