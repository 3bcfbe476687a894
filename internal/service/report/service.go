package report

import (
	"context"
	"fmt"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/report"
)

type ReportServiceImpl struct {
	reportRepo report.ReportRepository
}

func NewReportService(reportRepo report.ReportRepository) report.ReportService {
	return &ReportServiceImpl{
		reportRepo: reportRepo,
	}
}

// EmployeeReport implements report.ReportService.
func (s *ReportServiceImpl) EmployeeReport(ctx context.Context) ([]report.EmployeeReportRow, error) {
	rows, err := s.reportRepo.Employees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee report: %w", err)
	}

	result := make([]report.EmployeeReportRow, 0, len(rows))
	for _, r := range rows {
		result = append(result, report.NewEmployeeReportRow(r))
	}
	return result, nil
}

// DepartmentReport implements report.ReportService.
func (s *ReportServiceImpl) DepartmentReport(ctx context.Context) ([]report.DepartmentReportRow, error) {
	rows, err := s.reportRepo.Departments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get department report: %w", err)
	}

	result := make([]report.DepartmentReportRow, 0, len(rows))
	for _, r := range rows {
		result = append(result, report.DepartmentReportRow{
			Department:    r.Department,
			EmployeeCount: r.EmployeeCount,
		})
	}
	return result, nil
}

// LeaveReport implements report.ReportService.
func (s *ReportServiceImpl) LeaveReport(ctx context.Context) ([]report.LeaveReportRow, error) {
	rows, err := s.reportRepo.Leaves(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave report: %w", err)
	}

	result := make([]report.LeaveReportRow, 0, len(rows))
	for _, r := range rows {
		result = append(result, report.NewLeaveReportRow(r))
	}
	return result, nil
}
