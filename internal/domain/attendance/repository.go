package attendance

import (
	"context"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
)

type ListFilter struct {
	Scope  user.Scope
	Date   *time.Time
	Limit  int
	Offset int
}

// StatsFilter selects the attendance rows of one month. DepartmentID and
// RoleID pre-filter the users the rows belong to.
type StatsFilter struct {
	From         time.Time
	To           time.Time
	DepartmentID string
	RoleID       string
	UserID       string
}

type DayTrend struct {
	Day     int   `json:"day"`
	Present int64 `json:"present"`
	Absent  int64 `json:"absent"`
	HalfDay int64 `json:"halfDay"`
}

type EmployeeRollup struct {
	UserID        string
	Name          string
	Email         string
	TotalDays     int64
	DaysPresent   int64
	TotalDuration int64
	AvgDuration   float64
}

type AttendanceRepository interface {
	// Create inserts today's record, failing with ErrAlreadyPunchedIn when
	// one already exists for the user and date.
	Create(ctx context.Context, a Attendance) (Attendance, error)
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (Attendance, error)
	// PunchOut closes an open record, failing with ErrAlreadyPunchedOut when
	// it was closed concurrently.
	PunchOut(ctx context.Context, id string, at time.Time, workReport string, duration int) (Attendance, error)
	List(ctx context.Context, filter ListFilter) ([]Attendance, int64, error)
	DailyTrend(ctx context.Context, filter StatsFilter) ([]DayTrend, error)
	EmployeeRollups(ctx context.Context, filter StatsFilter) ([]EmployeeRollup, error)
}
