package role

import (
	"context"
	"encoding/json"
)

type RoleService interface {
	List(ctx context.Context) ([]RoleResponse, error)
	Get(ctx context.Context, id string) (RoleResponse, error)
	Create(ctx context.Context, req CreateRoleRequest) (RoleResponse, error)
	Update(ctx context.Context, id string, req UpdateRoleRequest, rawBody json.RawMessage) (RoleResponse, error)
	Delete(ctx context.Context, id string) error
}
