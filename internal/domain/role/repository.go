package role

import "context"

type RoleRepository interface {
	Create(ctx context.Context, r Role) (Role, error)
	GetByID(ctx context.Context, id string) (Role, error)
	GetByName(ctx context.Context, name string) (Role, error)
	// List returns every role ordered by name.
	List(ctx context.Context) ([]Role, error)
	Update(ctx context.Context, r Role) (Role, error)
	// Delete removes the role and clears it from the users holding it,
	// returning how many users were detached.
	Delete(ctx context.Context, id string) (int64, error)
}
