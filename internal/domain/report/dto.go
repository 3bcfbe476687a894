package report

const (
	dateLayout  = "2006-01-02"
	placeholder = "N/A"
)

// Report rows keep capitalized keys so clients can use them as CSV headers.

type EmployeeReportRow struct {
	Name       string `json:"Name"`
	Email      string `json:"Email"`
	Department string `json:"Department"`
	Role       string `json:"Role"`
	Status     string `json:"Status"`
	Joined     string `json:"Joined"`
}

func NewEmployeeReportRow(r EmployeeRow) EmployeeReportRow {
	return EmployeeReportRow{
		Name:       r.Name,
		Email:      r.Email,
		Department: orDefault(r.Department, placeholder),
		Role:       orDefault(r.Role, placeholder),
		Status:     r.Status,
		Joined:     r.DateOfJoining.Format(dateLayout),
	}
}

type DepartmentReportRow struct {
	Department    string `json:"Department"`
	EmployeeCount int64  `json:"EmployeeCount"`
}

type LeaveReportRow struct {
	Employee string `json:"Employee"`
	Type     string `json:"Type"`
	Start    string `json:"Start"`
	End      string `json:"End"`
	Status   string `json:"Status"`
	Approver string `json:"Approver"`
}

func NewLeaveReportRow(r LeaveRow) LeaveReportRow {
	return LeaveReportRow{
		Employee: orDefault(r.Employee, "Unknown"),
		Type:     r.LeaveType,
		Start:    r.StartDate.Format(dateLayout),
		End:      r.EndDate.Format(dateLayout),
		Status:   r.Status,
		Approver: orDefault(r.Approver, placeholder),
	}
}

func orDefault(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
