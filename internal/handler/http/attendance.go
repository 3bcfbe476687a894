package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/attendance"
	"github.com/emporia-hr/emporia-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Status(w http.ResponseWriter, r *http.Request)
	PunchIn(w http.ResponseWriter, r *http.Request)
	PunchOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// Status implements AttendanceHandler.
func (h *attendanceHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.attendanceService.Status(r.Context())
	if err != nil {
		slog.Error("AttendanceStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	payload := response.Payload{"status": status.State}
	if status.Data != nil {
		payload["data"] = status.Data
	}
	response.Success(w, payload)
}

// PunchIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) PunchIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.PunchInRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("PunchIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.attendanceService.PunchIn(r.Context(), req)
	if err != nil {
		slog.Error("PunchIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punched in successfully", response.Payload{"attendance": record})
}

// PunchOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) PunchOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.PunchOutRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("PunchOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.attendanceService.PunchOut(r.Context(), req)
	if err != nil {
		slog.Error("PunchOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punched out successfully", response.Payload{"attendance": record})
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := attendance.ListQuery{
		Date:  r.URL.Query().Get("date"),
		Page:  queryInt(r, "page"),
		Limit: queryInt(r, "limit"),
	}

	result, err := h.attendanceService.List(r.Context(), query)
	if err != nil {
		slog.Error("ListAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.List(w, "records", result.Records, response.Page{
		Count: result.TotalCount,
		Page:  result.Page,
		Limit: result.Limit,
	})
}

// Stats implements AttendanceHandler.
func (h *attendanceHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	query := attendance.StatsQuery{
		Month:      queryInt(r, "month"),
		Year:       queryInt(r, "year"),
		Department: r.URL.Query().Get("department"),
		Role:       r.URL.Query().Get("role"),
	}

	stats, err := h.attendanceService.Stats(r.Context(), query)
	if err != nil {
		slog.Error("AttendanceStats service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, response.Payload{
		"period":        stats.Period,
		"dailyTrend":    stats.DailyTrend,
		"employeeStats": stats.EmployeeStats,
	})
}
