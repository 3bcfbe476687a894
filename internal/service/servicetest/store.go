// Package servicetest provides in-memory repositories for service and
// handler tests.
package servicetest

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/attendance"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/audit"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/department"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/leave"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/role"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"github.com/google/uuid"
)

// Store is a single in-memory dataset shared by all fake repositories so
// joins (role names, department members) resolve like they do in SQL.
type Store struct {
	mu sync.Mutex

	users       map[string]user.User
	roles       map[string]role.Role
	departments map[string]department.Department
	leaves      map[string]leave.Leave
	attendance  map[string]attendance.Attendance
	auditLogs   []audit.AuditLog

	clock time.Time
}

func NewStore() *Store {
	return &Store{
		users:       map[string]user.User{},
		roles:       map[string]role.Role{},
		departments: map[string]department.Department{},
		leaves:      map[string]leave.Leave{},
		attendance:  map[string]attendance.Attendance{},
		clock:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// tick returns a strictly increasing timestamp so ordering by creation time is stable.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

// AddRole inserts a role with the permissions of its system kind.
func (s *Store) AddRole(kind user.RoleKind) role.Role {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.tick()
	r := role.Role{
		ID:          newID(),
		Name:        string(kind),
		Permissions: slices.Clone(user.SystemRolePermissions[kind]),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.roles[r.ID] = r
	return r
}

func (s *Store) AddDepartment(name string) department.Department {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.tick()
	d := department.Department{ID: newID(), Name: name, CreatedAt: now, UpdatedAt: now}
	s.departments[d.ID] = d
	return d
}

// AddUser inserts an active user and returns it with references resolved.
func (s *Store) AddUser(name, email string, r *role.Role, d *department.Department) user.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.tick()
	u := user.User{
		ID:            newID(),
		Name:          name,
		Email:         strings.ToLower(email),
		Status:        user.StatusActive,
		DateOfJoining: now.Truncate(24 * time.Hour),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if r != nil {
		u.RoleID = &r.ID
	}
	if d != nil {
		u.DepartmentID = &d.ID
	}
	s.users[u.ID] = u
	return s.resolveUser(u)
}

// SetPasswordHash overwrites a user's stored hash.
func (s *Store) SetPasswordHash(userID, hash string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.users[userID]
	u.PasswordHash = hash
	s.users[userID] = u
}

// User returns the stored user with references resolved.
func (s *Store) User(id string) (user.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return user.User{}, false
	}
	return s.resolveUser(u), true
}

func (s *Store) Leave(id string) (leave.Leave, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.leaves[id]
	if !ok {
		return leave.Leave{}, false
	}
	return s.resolveLeave(l), true
}

// AuditLogs returns a copy of every persisted audit log.
func (s *Store) AuditLogs() []audit.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.auditLogs)
}

func (s *Store) resolveUser(u user.User) user.User {
	u.Role = nil
	u.Department = nil
	if u.RoleID != nil {
		if r, ok := s.roles[*u.RoleID]; ok {
			u.Role = &user.RoleInfo{ID: r.ID, Name: r.Name, Permissions: slices.Clone(r.Permissions)}
		}
	}
	if u.DepartmentID != nil {
		if d, ok := s.departments[*u.DepartmentID]; ok {
			u.Department = &user.DepartmentInfo{ID: d.ID, Name: d.Name}
		}
	}
	return u
}

func (s *Store) resolveLeave(l leave.Leave) leave.Leave {
	l.Employee = nil
	l.Approver = nil
	if u, ok := s.users[l.EmployeeID]; ok {
		info := &leave.EmployeeInfo{ID: u.ID, Name: u.Name, Email: u.Email, DepartmentID: u.DepartmentID}
		if u.DepartmentID != nil {
			info.DepartmentName = s.departments[*u.DepartmentID].Name
		}
		l.Employee = info
	}
	if l.ApproverID != nil {
		if a, ok := s.users[*l.ApproverID]; ok {
			summary := a.Summary()
			l.Approver = &summary
		}
	}
	return l
}

// inScope mirrors the SQL scope clause: self scope matches the owner,
// department scope matches non-deleted members of the department.
func (s *Store) inScope(scope user.Scope, ownerID string) bool {
	switch {
	case scope.UserID != "":
		return ownerID == scope.UserID
	case scope.DepartmentID != "":
		u, ok := s.users[ownerID]
		return ok && !u.IsDeleted && u.DepartmentID != nil && *u.DepartmentID == scope.DepartmentID
	}
	return true
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
