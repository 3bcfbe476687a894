package user

import "strings"

type Permission string

const (
	// Employee Management
	PermissionEmployeeView   Permission = "employee:view"
	PermissionEmployeeCreate Permission = "employee:create"
	PermissionEmployeeEdit   Permission = "employee:edit"
	PermissionEmployeeDelete Permission = "employee:delete"

	// Department Management
	PermissionDepartmentView   Permission = "department:view"
	PermissionDepartmentCreate Permission = "department:create"
	PermissionDepartmentEdit   Permission = "department:edit"
	PermissionDepartmentDelete Permission = "department:delete"

	// Role Management
	PermissionRoleView   Permission = "role:view"
	PermissionRoleCreate Permission = "role:create"
	PermissionRoleEdit   Permission = "role:edit"
	PermissionRoleDelete Permission = "role:delete"

	// Leave Management
	PermissionLeaveView    Permission = "leave:view"
	PermissionLeaveApprove Permission = "leave:approve"

	// Attendance
	PermissionAttendanceView Permission = "attendance:view"

	// Audit & Reports
	PermissionAuditView  Permission = "audit:view"
	PermissionReportView Permission = "report:view"

	// User Management
	PermissionUserResetPassword Permission = "user:reset-password"
)

// AllPermissions is the closed set of permission tokens a role may hold.
var AllPermissions = []Permission{
	PermissionEmployeeView,
	PermissionEmployeeCreate,
	PermissionEmployeeEdit,
	PermissionEmployeeDelete,
	PermissionDepartmentView,
	PermissionDepartmentCreate,
	PermissionDepartmentEdit,
	PermissionDepartmentDelete,
	PermissionRoleView,
	PermissionRoleCreate,
	PermissionRoleEdit,
	PermissionRoleDelete,
	PermissionLeaveView,
	PermissionLeaveApprove,
	PermissionAttendanceView,
	PermissionAuditView,
	PermissionReportView,
	PermissionUserResetPassword,
}

var knownPermissions = func() map[Permission]struct{} {
	m := make(map[Permission]struct{}, len(AllPermissions))
	for _, p := range AllPermissions {
		m[p] = struct{}{}
	}
	return m
}()

// ParsePermission returns the permission named by s, or false if s is not a
// registered token.
func ParsePermission(s string) (Permission, bool) {
	p := Permission(strings.TrimSpace(s))
	_, ok := knownPermissions[p]
	return p, ok
}

// ParsePermissions converts raw tokens, dropping duplicates. Unknown tokens are
// returned separately so callers can report all of them at once.
func ParsePermissions(raw []string) (perms []Permission, unknown []string) {
	seen := make(map[Permission]struct{}, len(raw))
	perms = make([]Permission, 0, len(raw))
	for _, s := range raw {
		p, ok := ParsePermission(s)
		if !ok {
			unknown = append(unknown, s)
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		perms = append(perms, p)
	}
	return perms, unknown
}

// RoleKind is the closed variant of role names that carry behaviour
// (data scoping, dashboard shape). Any other role name is RoleKindCustom.
type RoleKind string

const (
	RoleKindSuperAdmin RoleKind = "Super Admin"
	RoleKindHRAdmin    RoleKind = "HR Admin"
	RoleKindManager    RoleKind = "Manager"
	RoleKindEmployee   RoleKind = "Employee"
	RoleKindCustom     RoleKind = ""
)

// KindOf maps a stored role name onto its variant.
func KindOf(roleName string) RoleKind {
	switch RoleKind(roleName) {
	case RoleKindSuperAdmin, RoleKindHRAdmin, RoleKindManager, RoleKindEmployee:
		return RoleKind(roleName)
	default:
		return RoleKindCustom
	}
}

// IsAdmin reports whether the kind sees organisation-wide data.
func (k RoleKind) IsAdmin() bool {
	return k == RoleKindSuperAdmin || k == RoleKindHRAdmin
}

// SystemRolePermissions are the permission bundles the seed bootstrap installs.
var SystemRolePermissions = map[RoleKind][]Permission{
	RoleKindSuperAdmin: AllPermissions,
	RoleKindHRAdmin: {
		PermissionEmployeeView,
		PermissionEmployeeCreate,
		PermissionEmployeeEdit,
		PermissionEmployeeDelete,
		PermissionDepartmentView,
		PermissionDepartmentCreate,
		PermissionDepartmentEdit,
		PermissionLeaveView,
		PermissionLeaveApprove,
		PermissionAttendanceView,
		PermissionReportView,
		PermissionUserResetPassword,
	},
	RoleKindManager: {
		PermissionEmployeeView,
		PermissionLeaveView,
		PermissionLeaveApprove,
		PermissionAttendanceView,
	},
	RoleKindEmployee: {
		PermissionLeaveView,
	},
}
