package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/dashboard"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// CountEmployees returns total and active headcount in a single query
func (r *dashboardRepositoryImpl) CountEmployees(ctx context.Context, departmentID string) (dashboard.EmployeeCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0)
		FROM users
		WHERE is_deleted = FALSE AND ($1 = '' OR department_id::text = $1)
	`

	var counts dashboard.EmployeeCounts
	if err := q.QueryRow(ctx, query, departmentID).Scan(&counts.Total, &counts.Active); err != nil {
		return dashboard.EmployeeCounts{}, fmt.Errorf("failed to count employees: %w", err)
	}
	return counts, nil
}

func (r *dashboardRepositoryImpl) CountDepartments(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM departments`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count departments: %w", err)
	}
	return total, nil
}

func (r *dashboardRepositoryImpl) CountJoiners(ctx context.Context, from, to time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM users
		WHERE is_deleted = FALSE AND date_of_joining >= $1 AND date_of_joining < $2
	`

	var total int64
	if err := q.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count new joiners: %w", err)
	}
	return total, nil
}

// CountLeaves returns total, pending and approved leaves in a single query
func (r *dashboardRepositoryImpl) CountLeaves(ctx context.Context, departmentID, userID string) (dashboard.LeaveCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN l.status = 'pending' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN l.status = 'approved' THEN 1 ELSE 0 END), 0)
		FROM leaves l
		JOIN users u ON u.id = l.employee_id
		WHERE u.is_deleted = FALSE
			AND ($1 = '' OR u.department_id::text = $1)
			AND ($2 = '' OR l.employee_id::text = $2)
	`

	var counts dashboard.LeaveCounts
	if err := q.QueryRow(ctx, query, departmentID, userID).Scan(&counts.Total, &counts.Pending, &counts.Approved); err != nil {
		return dashboard.LeaveCounts{}, fmt.Errorf("failed to count leaves: %w", err)
	}
	return counts, nil
}

func (r *dashboardRepositoryImpl) CountAttendanceDays(ctx context.Context, userID string, from, to time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM attendances
		WHERE user_id = $1 AND date >= $2 AND date < $3 AND status <> 'Absent'
	`

	var total int64
	if err := q.QueryRow(ctx, query, userID, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count attendance days: %w", err)
	}
	return total, nil
}
