package employee

import (
	"context"
	"encoding/json"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
)

type EmployeeService interface {
	List(ctx context.Context, query ListQuery) (ListResponse, error)
	Get(ctx context.Context, id string) (user.UserResponse, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (user.UserResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest, rawBody json.RawMessage) (user.UserResponse, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (StatsResponse, error)
}
