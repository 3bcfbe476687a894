package servicetest

import (
	"context"
	"slices"
	"strings"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/department"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/role"
)

type roleRepository struct{ s *Store }

func (s *Store) RoleRepository() role.RoleRepository { return &roleRepository{s: s} }

func (r *roleRepository) nameTaken(name, exceptID string) bool {
	for _, existing := range r.s.roles {
		if existing.ID != exceptID && existing.Name == name {
			return true
		}
	}
	return false
}

func (r *roleRepository) Create(_ context.Context, newRole role.Role) (role.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.nameTaken(newRole.Name, "") {
		return role.Role{}, role.ErrRoleNameExists
	}
	now := r.s.tick()
	newRole.ID = newID()
	newRole.CreatedAt, newRole.UpdatedAt = now, now
	r.s.roles[newRole.ID] = newRole
	return newRole, nil
}

func (r *roleRepository) GetByID(_ context.Context, id string) (role.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	found, ok := r.s.roles[id]
	if !ok {
		return role.Role{}, role.ErrRoleNotFound
	}
	return found, nil
}

func (r *roleRepository) GetByName(_ context.Context, name string) (role.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, found := range r.s.roles {
		if found.Name == name {
			return found, nil
		}
	}
	return role.Role{}, role.ErrRoleNotFound
}

func (r *roleRepository) List(_ context.Context) ([]role.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	roles := make([]role.Role, 0, len(r.s.roles))
	for _, found := range r.s.roles {
		roles = append(roles, found)
	}
	slices.SortFunc(roles, func(a, b role.Role) int { return strings.Compare(a.Name, b.Name) })
	return roles, nil
}

func (r *roleRepository) Update(_ context.Context, updated role.Role) (role.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.roles[updated.ID]
	if !ok {
		return role.Role{}, role.ErrRoleNotFound
	}
	if r.nameTaken(updated.Name, updated.ID) {
		return role.Role{}, role.ErrRoleNameExists
	}
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = r.s.tick()
	r.s.roles[updated.ID] = updated
	return updated, nil
}

func (r *roleRepository) Delete(_ context.Context, id string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.roles[id]; !ok {
		return 0, role.ErrRoleNotFound
	}
	var detached int64
	for uid, u := range r.s.users {
		if u.RoleID != nil && *u.RoleID == id {
			u.RoleID = nil
			r.s.users[uid] = u
			detached++
		}
	}
	delete(r.s.roles, id)
	return detached, nil
}

type departmentRepository struct{ s *Store }

func (s *Store) DepartmentRepository() department.DepartmentRepository {
	return &departmentRepository{s: s}
}

func (r *departmentRepository) resolve(d department.Department) department.Department {
	d.Manager = nil
	if d.ManagerID != nil {
		if m, ok := r.s.users[*d.ManagerID]; ok {
			summary := m.Summary()
			d.Manager = &summary
		}
	}
	return d
}

func (r *departmentRepository) check(d department.Department) error {
	for _, existing := range r.s.departments {
		if existing.ID != d.ID && existing.Name == d.Name {
			return department.ErrDepartmentNameExists
		}
	}
	if d.ManagerID != nil {
		if _, ok := r.s.users[*d.ManagerID]; !ok {
			return department.ErrManagerNotFound
		}
	}
	return nil
}

func (r *departmentRepository) Create(_ context.Context, d department.Department) (department.Department, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.check(d); err != nil {
		return department.Department{}, err
	}
	now := r.s.tick()
	d.ID = newID()
	d.CreatedAt, d.UpdatedAt = now, now
	r.s.departments[d.ID] = d
	return r.resolve(d), nil
}

func (r *departmentRepository) GetByID(_ context.Context, id string) (department.Department, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.departments[id]
	if !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	return r.resolve(d), nil
}

func (r *departmentRepository) GetByName(_ context.Context, name string) (department.Department, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, d := range r.s.departments {
		if d.Name == name {
			return r.resolve(d), nil
		}
	}
	return department.Department{}, department.ErrDepartmentNotFound
}

func (r *departmentRepository) List(_ context.Context, filter department.ListFilter) ([]department.Department, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	search := strings.ToLower(filter.Search)
	var matched []department.Department
	for _, d := range r.s.departments {
		if search != "" && !strings.Contains(strings.ToLower(d.Name), search) {
			continue
		}
		matched = append(matched, r.resolve(d))
	}
	slices.SortFunc(matched, func(a, b department.Department) int { return strings.Compare(a.Name, b.Name) })
	return paginate(matched, filter.Limit, filter.Offset), int64(len(matched)), nil
}

func (r *departmentRepository) Update(_ context.Context, d department.Department) (department.Department, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.departments[d.ID]
	if !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	if err := r.check(d); err != nil {
		return department.Department{}, err
	}
	d.CreatedAt = stored.CreatedAt
	d.UpdatedAt = r.s.tick()
	r.s.departments[d.ID] = d
	return r.resolve(d), nil
}

func (r *departmentRepository) Delete(_ context.Context, id string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.departments[id]; !ok {
		return 0, department.ErrDepartmentNotFound
	}
	var detached int64
	for uid, u := range r.s.users {
		if u.DepartmentID != nil && *u.DepartmentID == id {
			u.DepartmentID = nil
			r.s.users[uid] = u
			detached++
		}
	}
	delete(r.s.departments, id)
	return detached, nil
}
