package department

import "context"

type ListFilter struct {
	Search string
	// Limit 0 returns every row.
	Limit  int
	Offset int
}

type DepartmentRepository interface {
	Create(ctx context.Context, d Department) (Department, error)
	GetByID(ctx context.Context, id string) (Department, error)
	GetByName(ctx context.Context, name string) (Department, error)
	List(ctx context.Context, filter ListFilter) ([]Department, int64, error)
	Update(ctx context.Context, d Department) (Department, error)
	// Delete removes the department and detaches its members, returning how
	// many users lost their department reference.
	Delete(ctx context.Context, id string) (int64, error)
}
