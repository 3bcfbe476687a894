package attendance

import "context"

type AttendanceService interface {
	Status(ctx context.Context) (StatusResponse, error)
	PunchIn(ctx context.Context, req PunchInRequest) (AttendanceResponse, error)
	PunchOut(ctx context.Context, req PunchOutRequest) (AttendanceResponse, error)
	List(ctx context.Context, query ListQuery) (ListResponse, error)
	Stats(ctx context.Context, query StatsQuery) (StatsResponse, error)
}
