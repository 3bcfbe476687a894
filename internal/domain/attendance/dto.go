package attendance

import (
	"strings"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/pkg/validator"
)

const DefaultPageLimit = 20

type PunchInRequest struct {
	ScrumNote string `json:"scrumNote"`
}

func (r *PunchInRequest) Validate() error {
	r.ScrumNote = strings.TrimSpace(r.ScrumNote)
	if r.ScrumNote == "" {
		return ErrScrumNoteRequired
	}
	return nil
}

type PunchOutRequest struct {
	WorkReport string `json:"workReport"`
}

func (r *PunchOutRequest) Validate() error {
	r.WorkReport = strings.TrimSpace(r.WorkReport)
	if r.WorkReport == "" {
		return ErrWorkReportRequired
	}
	return nil
}

type ListQuery struct {
	Date  string
	Page  int
	Limit int

	day *time.Time
}

func (q *ListQuery) Validate() error {
	if q.Date != "" {
		d, ok := validator.ParseDay(q.Date)
		if !ok {
			return validator.ValidationErrors{{Field: "date", Message: "date must be a date (YYYY-MM-DD)"}}
		}
		q.day = &d
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageLimit
	}
	return nil
}

// Day is the parsed date filter, nil when absent.
func (q *ListQuery) Day() *time.Time {
	return q.day
}

type StatsQuery struct {
	Month      int
	Year       int
	Department string
	Role       string
}

func (q *StatsQuery) Validate(now time.Time) error {
	var errs validator.ValidationErrors
	if q.Month == 0 {
		q.Month = int(now.Month())
	}
	if q.Year == 0 {
		q.Year = now.Year()
	}
	if q.Month < 1 || q.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if q.Year < 1970 || q.Year > 9999 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is out of range"})
	}
	if q.Department != "" && !validator.IsValidUUID(q.Department) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "department must be a valid department id"})
	}
	if q.Role != "" && !validator.IsValidUUID(q.Role) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be a valid role id"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UserResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
}

type AttendanceResponse struct {
	ID         string        `json:"id"`
	User       *UserResponse `json:"user,omitempty"`
	Date       string        `json:"date"`
	PunchIn    time.Time     `json:"punchIn"`
	PunchOut   *time.Time    `json:"punchOut"`
	ScrumNote  string        `json:"scrumNote"`
	WorkReport string        `json:"workReport"`
	Duration   int           `json:"duration"`
	Status     Status        `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:         a.ID,
		Date:       a.Date.Format("2006-01-02"),
		PunchIn:    a.PunchIn,
		PunchOut:   a.PunchOut,
		ScrumNote:  a.ScrumNote,
		WorkReport: a.WorkReport,
		Duration:   a.Duration,
		Status:     a.Status,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
	if a.User != nil {
		resp.User = &UserResponse{
			ID:         a.User.ID,
			Name:       a.User.Name,
			Email:      a.User.Email,
			Role:       a.User.RoleName,
			Department: a.User.DepartmentName,
		}
	}
	return resp
}

type StatusResponse struct {
	State DayState
	Data  *AttendanceResponse
}

type ListResponse struct {
	Records    []AttendanceResponse
	TotalCount int64
	Page       int
	Limit      int
}

type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

type EmployeeStat struct {
	UserID               string  `json:"userId"`
	Name                 string  `json:"name"`
	Email                string  `json:"email"`
	TotalDays            int64   `json:"totalDays"`
	DaysPresent          int64   `json:"daysPresent"`
	TotalDuration        int64   `json:"totalDuration"`
	AvgDuration          int64   `json:"avgDuration"`
	AttendancePercentage float64 `json:"attendancePercentage"`
}

type StatsResponse struct {
	Period        Period         `json:"period"`
	DailyTrend    []DayTrend     `json:"dailyTrend"`
	EmployeeStats []EmployeeStat `json:"employeeStats"`
}
