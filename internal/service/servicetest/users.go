package servicetest

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
)

type userRepository struct{ s *Store }

func (s *Store) UserRepository() user.UserRepository { return &userRepository{s: s} }

func (r *userRepository) GetByID(_ context.Context, id string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return r.s.resolveUser(u), nil
}

func (r *userRepository) GetActiveByEmail(_ context.Context, email string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if !u.IsDeleted && strings.EqualFold(u.Email, email) {
			return r.s.resolveUser(u), nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *userRepository) emailTaken(email, exceptID string) bool {
	for _, u := range r.s.users {
		if u.ID != exceptID && !u.IsDeleted && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (r *userRepository) Create(_ context.Context, newUser user.User) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.emailTaken(newUser.Email, "") {
		return user.User{}, user.ErrUserEmailExists
	}
	now := r.s.tick()
	newUser.ID = newID()
	newUser.Email = strings.ToLower(newUser.Email)
	newUser.CreatedAt, newUser.UpdatedAt = now, now
	r.s.users[newUser.ID] = newUser
	return r.s.resolveUser(newUser), nil
}

func (r *userRepository) Update(_ context.Context, u user.User) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.users[u.ID]
	if !ok || stored.IsDeleted {
		return user.User{}, user.ErrUserNotFound
	}
	if r.emailTaken(u.Email, u.ID) {
		return user.User{}, user.ErrUserEmailExists
	}
	stored.Name = u.Name
	stored.Email = strings.ToLower(u.Email)
	stored.RoleID = u.RoleID
	stored.DepartmentID = u.DepartmentID
	stored.Status = u.Status
	stored.Phone = u.Phone
	stored.Address = u.Address
	stored.ProfilePicture = u.ProfilePicture
	stored.UpdatedAt = r.s.tick()
	r.s.users[u.ID] = stored
	return r.s.resolveUser(stored), nil
}

func (r *userRepository) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok || u.IsDeleted {
		return user.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	r.s.users[userID] = u
	return nil
}

func (r *userRepository) SoftDelete(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok || u.IsDeleted {
		return user.ErrUserNotFound
	}
	u.IsDeleted = true
	u.Status = user.StatusInactive
	r.s.users[userID] = u
	return nil
}

func (r *userRepository) List(_ context.Context, filter user.ListFilter) ([]user.User, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	search := strings.ToLower(filter.Search)
	var matched []user.User
	for _, u := range r.s.users {
		if u.IsDeleted {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(u.Name), search) && !strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		if filter.DepartmentID != "" && (u.DepartmentID == nil || *u.DepartmentID != filter.DepartmentID) {
			continue
		}
		if filter.RoleID != "" && (u.RoleID == nil || *u.RoleID != filter.RoleID) {
			continue
		}
		if filter.Status != "" && u.Status != filter.Status {
			continue
		}
		matched = append(matched, r.s.resolveUser(u))
	}
	slices.SortFunc(matched, func(a, b user.User) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return paginate(matched, filter.Limit, filter.Offset), int64(len(matched)), nil
}

func (r *userRepository) IDsInDepartment(_ context.Context, departmentID string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ids := []string{}
	for _, u := range r.s.users {
		if !u.IsDeleted && u.DepartmentID != nil && *u.DepartmentID == departmentID {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

func (r *userRepository) GetSummaries(_ context.Context, ids []string) (map[string]user.Summary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	summaries := map[string]user.Summary{}
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			summaries[id] = u.Summary()
		}
	}
	return summaries, nil
}

func (r *userRepository) Counts(_ context.Context) (user.Counts, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	counts := user.Counts{ByDepartment: []user.DepartmentCount{}}
	byDept := map[string]*user.DepartmentCount{}
	for _, u := range r.s.users {
		if u.IsDeleted {
			continue
		}
		counts.Total++
		if u.Status == user.StatusActive {
			counts.Active++
		} else {
			counts.Inactive++
		}
		key := ""
		if u.DepartmentID != nil {
			key = *u.DepartmentID
		}
		dc, ok := byDept[key]
		if !ok {
			dc = &user.DepartmentCount{DepartmentID: u.DepartmentID}
			if u.DepartmentID != nil {
				dc.DepartmentName = r.s.departments[*u.DepartmentID].Name
			}
			byDept[key] = dc
		}
		dc.Count++
	}
	for _, dc := range byDept {
		counts.ByDepartment = append(counts.ByDepartment, *dc)
	}
	slices.SortFunc(counts.ByDepartment, func(a, b user.DepartmentCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.DepartmentName, b.DepartmentName)
	})
	return counts, nil
}
