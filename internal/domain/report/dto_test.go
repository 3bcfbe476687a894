package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewEmployeeReportRow(t *testing.T) {
	dept := "Engineering"
	row := NewEmployeeReportRow(EmployeeRow{
		Name:          "Alice Johnson",
		Email:         "alice.johnson@emporia.com",
		Department:    &dept,
		Status:        "active",
		DateOfJoining: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, "Engineering", row.Department)
	assert.Equal(t, "N/A", row.Role)
	assert.Equal(t, "2024-05-02", row.Joined)
}

func TestNewLeaveReportRow(t *testing.T) {
	row := NewLeaveReportRow(LeaveRow{
		LeaveType: "Sick Leave",
		StartDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		Status:    "pending",
	})

	assert.Equal(t, "Unknown", row.Employee)
	assert.Equal(t, "N/A", row.Approver)
	assert.Equal(t, "2025-03-10", row.Start)
	assert.Equal(t, "2025-03-11", row.End)
}
