package leave

import "context"

type LeaveService interface {
	List(ctx context.Context, query ListQuery) (ListResponse, error)
	MyLeaves(ctx context.Context) ([]LeaveResponse, error)
	Stats(ctx context.Context) (StatsResponse, error)
	Get(ctx context.Context, id string) (LeaveResponse, error)
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	Withdraw(ctx context.Context, id string) error
	Approve(ctx context.Context, id string, req ReviewLeaveRequest) (LeaveResponse, error)
	Reject(ctx context.Context, id string, req ReviewLeaveRequest) (LeaveResponse, error)
}
