package report

import "time"

// EmployeeRow is one line of the employee census.
type EmployeeRow struct {
	Name          string
	Email         string
	Department    *string
	Role          *string
	Status        string
	DateOfJoining time.Time
}

// DepartmentRow is a department with its live count of non-deleted members.
type DepartmentRow struct {
	Department    string
	EmployeeCount int64
}

type LeaveRow struct {
	Employee  *string
	LeaveType string
	StartDate time.Time
	EndDate   time.Time
	Status    string
	Approver  *string
}
