package leave

import (
	"context"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
)

type ListFilter struct {
	Scope     user.Scope
	Status    Status
	LeaveType Type
	StartFrom *time.Time
	StartTo   *time.Time
	// Limit 0 returns every row.
	Limit  int
	Offset int
}

type Counts struct {
	Total    int64
	Pending  int64
	Approved int64
	Rejected int64
}

type LeaveRepository interface {
	Create(ctx context.Context, l Leave) (Leave, error)
	GetByID(ctx context.Context, id string) (Leave, error)
	List(ctx context.Context, filter ListFilter) ([]Leave, int64, error)
	// UpdatePending rewrites type, dates and reason of a pending leave.
	UpdatePending(ctx context.Context, l Leave) (Leave, error)
	// Resolve moves a pending leave to approved or rejected. It fails with
	// ErrLeaveAlreadyProcessed when the leave is no longer pending.
	Resolve(ctx context.Context, id string, status Status, approverID, comments string, at time.Time) (Leave, error)
	DeletePending(ctx context.Context, id string) error
	Counts(ctx context.Context, scope user.Scope) (Counts, error)
}
