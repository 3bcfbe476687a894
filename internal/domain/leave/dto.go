package leave

import (
	"strings"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/validator"
)

const DefaultPageLimit = 10

const dateLayout = "2006-01-02"

type ApplyLeaveRequest struct {
	LeaveType string `json:"leaveType"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`

	start time.Time
	end   time.Time
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Reason = strings.TrimSpace(r.Reason)
	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{Field: "leaveType", Message: "Leave type is required"})
	} else if !Type(r.LeaveType).Valid() {
		errs = append(errs, validator.ValidationError{Field: "leaveType", Message: "Leave type must be one of Paid Leave, Sick Leave, Casual Leave, Unpaid Leave"})
	}
	start, okStart := validator.ParseDay(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "startDate", Message: "Start date is required (YYYY-MM-DD)"})
	}
	end, okEnd := validator.ParseDay(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "endDate", Message: "End date is required (YYYY-MM-DD)"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "Reason is required"})
	}
	if len(errs) > 0 {
		return errs
	}

	if start.After(end) {
		return ErrInvalidDateRange
	}
	r.start, r.end = start, end
	return nil
}

// Range returns the parsed dates. Only meaningful after Validate succeeded.
func (r *ApplyLeaveRequest) Range() (time.Time, time.Time) {
	return r.start, r.end
}

// UpdateLeaveRequest edits a pending leave. Absent keys keep their value.
type UpdateLeaveRequest struct {
	LeaveType *string `json:"leaveType"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Reason    *string `json:"reason"`
}

func (r *UpdateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.LeaveType != nil && !Type(*r.LeaveType).Valid() {
		errs = append(errs, validator.ValidationError{Field: "leaveType", Message: "Leave type must be one of Paid Leave, Sick Leave, Casual Leave, Unpaid Leave"})
	}
	if r.StartDate != nil {
		if _, ok := validator.ParseDay(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "startDate", Message: "startDate must be a date (YYYY-MM-DD)"})
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.ParseDay(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "endDate", Message: "endDate must be a date (YYYY-MM-DD)"})
		}
	}
	if r.Reason != nil {
		reason := strings.TrimSpace(*r.Reason)
		r.Reason = &reason
		if reason == "" {
			errs = append(errs, validator.ValidationError{Field: "reason", Message: "Reason cannot be empty"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply merges the request into l and recomputes the day count.
func (r *UpdateLeaveRequest) Apply(l *Leave) error {
	if r.LeaveType != nil {
		l.LeaveType = Type(*r.LeaveType)
	}
	if r.StartDate != nil {
		l.StartDate, _ = validator.ParseDay(*r.StartDate)
	}
	if r.EndDate != nil {
		l.EndDate, _ = validator.ParseDay(*r.EndDate)
	}
	if r.Reason != nil {
		l.Reason = *r.Reason
	}
	if l.StartDate.After(l.EndDate) {
		return ErrInvalidDateRange
	}
	l.NumberOfDays = CountDays(l.StartDate, l.EndDate)
	return nil
}

type ReviewLeaveRequest struct {
	Comments string `json:"comments"`
}

type ListQuery struct {
	Status    string
	LeaveType string
	StartDate string
	EndDate   string
	Page      int
	Limit     int
}

func (q *ListQuery) Validate() error {
	var errs validator.ValidationErrors
	if q.Status != "" && !Status(q.Status).Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be pending, approved or rejected"})
	}
	if q.LeaveType != "" && !Type(q.LeaveType).Valid() {
		errs = append(errs, validator.ValidationError{Field: "leaveType", Message: "unknown leave type"})
	}
	if q.StartDate != "" {
		if _, ok := validator.ParseDay(q.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "startDate", Message: "startDate must be a date (YYYY-MM-DD)"})
		}
	}
	if q.EndDate != "" {
		if _, ok := validator.ParseDay(q.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "endDate", Message: "endDate must be a date (YYYY-MM-DD)"})
		}
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageLimit
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID         string                   `json:"id"`
	Name       string                   `json:"name"`
	Email      string                   `json:"email"`
	Department *user.DepartmentResponse `json:"department"`
}

type LeaveResponse struct {
	ID               string            `json:"id"`
	Employee         *EmployeeResponse `json:"employee"`
	LeaveType        Type              `json:"leaveType"`
	StartDate        string            `json:"startDate"`
	EndDate          string            `json:"endDate"`
	NumberOfDays     int               `json:"numberOfDays"`
	Reason           string            `json:"reason"`
	Status           Status            `json:"status"`
	Approver         *user.Summary     `json:"approver"`
	ApproverComments string            `json:"approverComments,omitempty"`
	ApprovedAt       *time.Time        `json:"approvedAt,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

func NewLeaveResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:               l.ID,
		LeaveType:        l.LeaveType,
		StartDate:        l.StartDate.Format(dateLayout),
		EndDate:          l.EndDate.Format(dateLayout),
		NumberOfDays:     l.NumberOfDays,
		Reason:           l.Reason,
		Status:           l.Status,
		Approver:         l.Approver,
		ApproverComments: l.ApproverComments,
		ApprovedAt:       l.ApprovedAt,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
	if l.Employee != nil {
		resp.Employee = &EmployeeResponse{ID: l.Employee.ID, Name: l.Employee.Name, Email: l.Employee.Email}
		if l.Employee.DepartmentID != nil {
			resp.Employee.Department = &user.DepartmentResponse{ID: *l.Employee.DepartmentID, Name: l.Employee.DepartmentName}
		}
	}
	return resp
}

type ListResponse struct {
	Leaves     []LeaveResponse
	TotalCount int64
	Page       int
	Limit      int
}

type StatsResponse struct {
	TotalLeaves    int64 `json:"totalLeaves"`
	PendingLeaves  int64 `json:"pendingLeaves"`
	ApprovedLeaves int64 `json:"approvedLeaves"`
	RejectedLeaves int64 `json:"rejectedLeaves"`
}
