package http

import (
	"log/slog"
	"net/http"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/report"
	"github.com/emporia-hr/emporia-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// Employee census
	GetEmployeeReport(w http.ResponseWriter, r *http.Request)

	// Headcount per department
	GetDepartmentReport(w http.ResponseWriter, r *http.Request)

	// Leave lifecycle
	GetLeaveReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GetEmployeeReport handles GET /reports/employees
func (h *reportHandlerImpl) GetEmployeeReport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.EmployeeReport(r.Context())
	if err != nil {
		slog.Error("EmployeeReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, response.Payload{"data": rows})
}

// GetDepartmentReport handles GET /reports/departments
func (h *reportHandlerImpl) GetDepartmentReport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.DepartmentReport(r.Context())
	if err != nil {
		slog.Error("DepartmentReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, response.Payload{"data": rows})
}

// GetLeaveReport handles GET /reports/leaves
func (h *reportHandlerImpl) GetLeaveReport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.LeaveReport(r.Context())
	if err != nil {
		slog.Error("LeaveReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, response.Payload{"data": rows})
}
