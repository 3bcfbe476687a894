package dashboard

import (
	"context"
	"time"
)

// EmployeeCounts holds headcounts of non-deleted users.
type EmployeeCounts struct {
	Total  int64
	Active int64
}

// LeaveCounts holds leave totals by status.
type LeaveCounts struct {
	Total    int64
	Pending  int64
	Approved int64
}

type DashboardRepository interface {
	// CountEmployees counts non-deleted users. An empty departmentID counts the whole organization.
	CountEmployees(ctx context.Context, departmentID string) (EmployeeCounts, error)
	CountDepartments(ctx context.Context) (int64, error)
	// CountJoiners counts non-deleted users whose date of joining falls in [from, to).
	CountJoiners(ctx context.Context, from, to time.Time) (int64, error)
	// CountLeaves counts leaves of non-deleted users, optionally narrowed to a department or a single user.
	CountLeaves(ctx context.Context, departmentID, userID string) (LeaveCounts, error)
	// CountAttendanceDays counts attendance days of a user in [from, to).
	CountAttendanceDays(ctx context.Context, userID string, from, to time.Time) (int64, error)
}
