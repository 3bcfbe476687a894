package fixtures

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/department"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/role"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

// SeedResult counts the rows the seeder actually inserted.
type SeedResult struct {
	Roles       int
	Departments int
	Users       int
}

type Seeder struct {
	roles       role.RoleRepository
	departments department.DepartmentRepository
	users       user.UserRepository
	hashCost    int
}

func NewSeeder(roles role.RoleRepository, departments department.DepartmentRepository, users user.UserRepository) *Seeder {
	return &Seeder{
		roles:       roles,
		departments: departments,
		users:       users,
		hashCost:    bcrypt.DefaultCost,
	}
}

// WithHashCost overrides the bcrypt cost used for demo passwords.
func (s *Seeder) WithHashCost(cost int) *Seeder {
	s.hashCost = cost
	return s
}

// Seed installs the system roles, the default departments and the demo
// users. Existing rows are looked up by name or e-mail and left untouched, so
// running it twice is a no-op.
func (s *Seeder) Seed(ctx context.Context) (SeedResult, error) {
	var result SeedResult

	roleIDs := make(map[user.RoleKind]string)
	for _, def := range GetDefaultRoles() {
		r, created, err := s.ensureRole(ctx, def)
		if err != nil {
			return result, err
		}
		if created {
			result.Roles++
		}
		roleIDs[def.Kind] = r.ID
	}

	departments := make(map[string]department.Department)
	for _, def := range GetDefaultDepartments() {
		d, created, err := s.ensureDepartment(ctx, def)
		if err != nil {
			return result, err
		}
		if created {
			result.Departments++
		}
		departments[def.Name] = d
	}

	for _, def := range GetDemoUsers() {
		u, created, err := s.ensureUser(ctx, def, roleIDs, departments)
		if err != nil {
			return result, err
		}
		if created {
			result.Users++
		}

		if !def.ManagesDepartment {
			continue
		}
		d := departments[def.Department]
		if d.ManagerID != nil {
			continue
		}
		d.ManagerID = &u.ID
		if _, err := s.departments.Update(ctx, d); err != nil {
			return result, fmt.Errorf("failed to assign manager of %s: %w", d.Name, err)
		}
	}

	return result, nil
}

func (s *Seeder) ensureRole(ctx context.Context, def RoleDefinition) (role.Role, bool, error) {
	existing, err := s.roles.GetByName(ctx, string(def.Kind))
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, role.ErrRoleNotFound) {
		return role.Role{}, false, fmt.Errorf("failed to look up role %s: %w", def.Kind, err)
	}

	created, err := s.roles.Create(ctx, role.Role{
		Name:        string(def.Kind),
		Permissions: slices.Clone(user.SystemRolePermissions[def.Kind]),
		Description: def.Description,
	})
	if err != nil {
		return role.Role{}, false, fmt.Errorf("failed to create role %s: %w", def.Kind, err)
	}
	slog.Info("seeded role", "name", created.Name)
	return created, true, nil
}

func (s *Seeder) ensureDepartment(ctx context.Context, def DepartmentDefinition) (department.Department, bool, error) {
	existing, err := s.departments.GetByName(ctx, def.Name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, department.ErrDepartmentNotFound) {
		return department.Department{}, false, fmt.Errorf("failed to look up department %s: %w", def.Name, err)
	}

	created, err := s.departments.Create(ctx, department.Department{Name: def.Name, Description: def.Description})
	if err != nil {
		return department.Department{}, false, fmt.Errorf("failed to create department %s: %w", def.Name, err)
	}
	slog.Info("seeded department", "name", created.Name)
	return created, true, nil
}

func (s *Seeder) ensureUser(ctx context.Context, def UserDefinition, roleIDs map[user.RoleKind]string, departments map[string]department.Department) (user.User, bool, error) {
	existing, err := s.users.GetActiveByEmail(ctx, def.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return user.User{}, false, fmt.Errorf("failed to look up user %s: %w", def.Email, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(def.Password), s.hashCost)
	if err != nil {
		return user.User{}, false, fmt.Errorf("failed to hash password: %w", err)
	}

	roleID := roleIDs[def.Role]
	deptID := departments[def.Department].ID
	created, err := s.users.Create(ctx, user.User{
		Name:          def.Name,
		Email:         def.Email,
		PasswordHash:  string(hash),
		RoleID:        &roleID,
		DepartmentID:  &deptID,
		Status:        user.StatusActive,
		DateOfJoining: time.Now().UTC().Truncate(24 * time.Hour),
	})
	if err != nil {
		return user.User{}, false, fmt.Errorf("failed to create user %s: %w", def.Email, err)
	}
	slog.Info("seeded user", "email", created.Email, "role", def.Role)
	return created, true, nil
}
