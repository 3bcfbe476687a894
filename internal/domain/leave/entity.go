package leave

import (
	"math"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
)

type Type string

const (
	TypePaid   Type = "Paid Leave"
	TypeSick   Type = "Sick Leave"
	TypeCasual Type = "Casual Leave"
	TypeUnpaid Type = "Unpaid Leave"
)

var Types = []Type{TypePaid, TypeSick, TypeCasual, TypeUnpaid}

func (t Type) Valid() bool {
	switch t {
	case TypePaid, TypeSick, TypeCasual, TypeUnpaid:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// EmployeeInfo is the resolved employee reference of a leave.
type EmployeeInfo struct {
	ID             string
	Name           string
	Email          string
	DepartmentID   *string
	DepartmentName string
}

type Leave struct {
	ID               string
	EmployeeID       string
	LeaveType        Type
	StartDate        time.Time
	EndDate          time.Time
	NumberOfDays     int
	Reason           string
	Status           Status
	ApproverID       *string
	ApproverComments string
	ApprovedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Join
	Employee *EmployeeInfo
	Approver *user.Summary
}

func (l Leave) IsPending() bool {
	return l.Status == StatusPending
}

// CountDays returns the inclusive number of calendar days between start and end.
func CountDays(start, end time.Time) int {
	diff := end.Sub(start)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours()/24)) + 1
}
