package report

import "context"

type ReportRepository interface {
	// Employees lists non-deleted users ordered by name.
	Employees(ctx context.Context) ([]EmployeeRow, error)
	// Departments lists every department ordered by name.
	Departments(ctx context.Context) ([]DepartmentRow, error)
	// Leaves lists every leave, newest first.
	Leaves(ctx context.Context) ([]LeaveRow, error)
}
