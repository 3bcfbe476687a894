package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePermissions(t *testing.T) {
	perms, unknown := ParsePermissions([]string{"employee:view", "employee:veiw", "leave:view", "employee:view"})

	assert.Equal(t, []Permission{PermissionEmployeeView, PermissionLeaveView}, perms)
	assert.Equal(t, []string{"employee:veiw"}, unknown)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, RoleKindSuperAdmin, KindOf("Super Admin"))
	assert.Equal(t, RoleKindHRAdmin, KindOf("HR Admin"))
	assert.Equal(t, RoleKindManager, KindOf("Manager"))
	assert.Equal(t, RoleKindEmployee, KindOf("Employee"))
	assert.Equal(t, RoleKindCustom, KindOf("manager"))
	assert.Equal(t, RoleKindCustom, KindOf("Contractor"))

	assert.True(t, RoleKindHRAdmin.IsAdmin())
	assert.False(t, RoleKindManager.IsAdmin())
}

func TestUser_HasAnyPermission(t *testing.T) {
	u := User{Role: &RoleInfo{Name: "Manager", Permissions: SystemRolePermissions[RoleKindManager]}}

	assert.True(t, u.HasAnyPermission(PermissionEmployeeDelete, PermissionLeaveApprove))
	assert.False(t, u.HasAnyPermission(PermissionEmployeeDelete))
	assert.Equal(t, RoleKindManager, u.Kind())

	root := User{Role: &RoleInfo{Name: "Super Admin"}}
	assert.True(t, root.HasAnyPermission(PermissionAuditView))
	assert.True(t, root.HasAnyPermission(PermissionRoleDelete))
	assert.False(t, root.HasAnyPermission())

		orphan := User{}
	assert.False(t, orphan.HasAnyPermission(PermissionLeaveView))
	assert.Equal(t, RoleKindCustom, orphan.Kind())
}

func TestSystemRolePermissionsAreRegistered(t *testing.T) {
	for kind, perms := range SystemRolePermissions {
		for _, p := range perms {
			_, ok := ParsePermission(string(p))
			assert.True(t, ok, "%s holds unregistered permission %s", kind, p)
		}
	}
}

func TestUser_DataScope(t *testing.T) {
	dept := "0192a3b4-c5d6-7e8f-9a0b-1c2d3e4f5a6b"

	admin := User{ID: "a", Role: &RoleInfo{Name: "HR Admin"}}
	assert.True(t, admin.DataScope().Unrestricted())

	manager := User{ID: "m", DepartmentID: &dept, Role: &RoleInfo{Name: "Manager"}}
	assert.Equal(t, Scope{DepartmentID: dept}, manager.DataScope())

	loneManager := User{ID: "m2", Role: &RoleInfo{Name: "Manager"}}
	assert.Equal(t, Scope{UserID: "m2"}, loneManager.DataScope())

	employee := User{ID: "e", DepartmentID: &dept, Role: &RoleInfo{Name: "Employee"}}
	assert.Equal(t, Scope{UserID: "e"}, employee.DataScope())

	custom := User{ID: "c", Role: &RoleInfo{Name: "Contractor"}}
	assert.Equal(t, Scope{UserID: "c"}, custom.DataScope())
}
