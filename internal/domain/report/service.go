package report

import "context"

type ReportService interface {
	EmployeeReport(ctx context.Context) ([]EmployeeReportRow, error)
	DepartmentReport(ctx context.Context) ([]DepartmentReportRow, error)
	LeaveReport(ctx context.Context) ([]LeaveReportRow, error)
}
