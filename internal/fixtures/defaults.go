package fixtures

import (
	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
)

// ==========================================
// DEFAULT ROLES
// ==========================================

type RoleDefinition struct {
	Kind        user.RoleKind
	Description string
}

func GetDefaultRoles() []RoleDefinition {
	return []RoleDefinition{
		{Kind: user.RoleKindSuperAdmin, Description: "Full system access with all permissions"},
		{Kind: user.RoleKindHRAdmin, Description: "Manage employees, departments, and leaves"},
		{Kind: user.RoleKindManager, Description: "Manage team members and approve team leaves"},
		{Kind: user.RoleKindEmployee, Description: "Self-service access to profile and leave management"},
	}
}

// ==========================================
// DEFAULT DEPARTMENTS
// ==========================================

type DepartmentDefinition struct {
	Name        string
	Description string
}

func GetDefaultDepartments() []DepartmentDefinition {
	return []DepartmentDefinition{
		{Name: "Engineering", Description: "Software development and technical operations"},
		{Name: "Human Resources", Description: "Employee management and recruitment"},
		{Name: "Finance", Description: "Financial planning and accounting"},
		{Name: "Marketing", Description: "Marketing and brand management"},
		{Name: "Sales", Description: "Sales and business development"},
	}
}

// ==========================================
// DEMO USERS
// ==========================================

type UserDefinition struct {
	Name       string
	Email      string
	Password   string
	Role       user.RoleKind
	Department string
	// ManagesDepartment marks the user as manager of Department.
	ManagesDepartment bool
}

func GetDemoUsers() []UserDefinition {
	return []UserDefinition{
		{Name: "Admin User", Email: "admin@emporia.com", Password: "admin123", Role: user.RoleKindSuperAdmin, Department: "Human Resources"},
		{Name: "HR Manager", Email: "hr@emporia.com", Password: "hradmin123", Role: user.RoleKindHRAdmin, Department: "Human Resources"},
		{Name: "John Smith", Email: "john.smith@emporia.com", Password: "manager123", Role: user.RoleKindManager, Department: "Engineering", ManagesDepartment: true},
		{Name: "Alice Johnson", Email: "alice.johnson@emporia.com", Password: "employee123", Role: user.RoleKindEmployee, Department: "Engineering"},
		{Name: "Bob Williams", Email: "bob.williams@emporia.com", Password: "employee123", Role: user.RoleKindEmployee, Department: "Engineering"},
		{Name: "Carol Davis", Email: "carol.davis@emporia.com", Password: "employee123", Role: user.RoleKindEmployee, Department: "Finance"},
		{Name: "David Brown", Email: "david.brown@emporia.com", Password: "employee123", Role: user.RoleKindEmployee, Department: "Marketing"},
	}
}
