package postgresql

import (
	"context"
	"fmt"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/report"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

func (r *reportRepositoryImpl) Employees(ctx context.Context) ([]report.EmployeeRow, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT u.name, u.email, d.name, ro.name, u.status, u.date_of_joining
		FROM users u
		LEFT JOIN departments d ON d.id = u.department_id
		LEFT JOIN roles ro ON ro.id = u.role_id
		WHERE u.is_deleted = FALSE
		ORDER BY u.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query employee report: %w", err)
	}
	defer rows.Close()

	result := []report.EmployeeRow{}
	for rows.Next() {
		var row report.EmployeeRow
		if err := rows.Scan(&row.Name, &row.Email, &row.Department, &row.Role, &row.Status, &row.DateOfJoining); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *reportRepositoryImpl) Departments(ctx context.Context) ([]report.DepartmentRow, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT d.name, COUNT(u.id)
		FROM departments d
		LEFT JOIN users u ON u.department_id = d.id AND u.is_deleted = FALSE
		GROUP BY d.id, d.name
		ORDER BY d.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query department report: %w", err)
	}
	defer rows.Close()

	result := []report.DepartmentRow{}
	for rows.Next() {
		var row report.DepartmentRow
		if err := rows.Scan(&row.Department, &row.EmployeeCount); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *reportRepositoryImpl) Leaves(ctx context.Context) ([]report.LeaveRow, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT e.name, l.leave_type, l.start_date, l.end_date, l.status, a.name
		FROM leaves l
		LEFT JOIN users e ON e.id = l.employee_id
		LEFT JOIN users a ON a.id = l.approver_id
		ORDER BY l.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave report: %w", err)
	}
	defer rows.Close()

	result := []report.LeaveRow{}
	for rows.Next() {
		var row report.LeaveRow
		if err := rows.Scan(&row.Employee, &row.LeaveType, &row.StartDate, &row.EndDate, &row.Status, &row.Approver); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
