package department

import (
	"context"
	"encoding/json"
)

type DepartmentService interface {
	List(ctx context.Context, query ListQuery) (ListResponse, error)
	Get(ctx context.Context, id string) (DepartmentResponse, error)
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	Update(ctx context.Context, id string, req UpdateDepartmentRequest, rawBody json.RawMessage) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}
