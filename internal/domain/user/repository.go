package user

import (
	"context"
)

// ListFilter narrows a user listing. Soft-deleted users are always excluded.
type ListFilter struct {
	Search       string
	DepartmentID string
	RoleID       string
	Status       Status
	Limit        int
	Offset       int
}

// DepartmentCount is the number of non-deleted members of one department.
type DepartmentCount struct {
	DepartmentID   *string
	DepartmentName string
	Count          int64
}

// Counts summarises the non-deleted user population.
type Counts struct {
	Total        int64
	Active       int64
	Inactive     int64
	ByDepartment []DepartmentCount
}

type UserRepository interface {
	// GetByID returns the user with role and department resolved, including
	// soft-deleted users.
	GetByID(ctx context.Context, id string) (User, error)
	// GetActiveByEmail returns the non-deleted user owning email.
	GetActiveByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	Update(ctx context.Context, u User) (User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	SoftDelete(ctx context.Context, userID string) error
	List(ctx context.Context, filter ListFilter) ([]User, int64, error)
	// IDsInDepartment lists non-deleted members of a department.
	IDsInDepartment(ctx context.Context, departmentID string) ([]string, error)
	GetSummaries(ctx context.Context, ids []string) (map[string]Summary, error)
	Counts(ctx context.Context) (Counts, error)
}
