package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestCountDays(t *testing.T) {
	assert.Equal(t, 1, CountDays(day("2025-03-10"), day("2025-03-10")))
	assert.Equal(t, 5, CountDays(day("2025-03-10"), day("2025-03-14")))
	assert.Equal(t, 3, CountDays(day("2025-02-27"), day("2025-03-01")))
}

func TestApplyLeaveRequest_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := ApplyLeaveRequest{LeaveType: "Sick Leave", StartDate: "2025-03-10", EndDate: "2025-03-11", Reason: " flu "}
		require.NoError(t, req.Validate())
		start, end := req.Range()
		assert.Equal(t, day("2025-03-10"), start)
		assert.Equal(t, day("2025-03-11"), end)
		assert.Equal(t, "flu", req.Reason)
	})

	t.Run("start after end", func(t *testing.T) {
		req := ApplyLeaveRequest{LeaveType: "Paid Leave", StartDate: "2025-03-12", EndDate: "2025-03-10", Reason: "trip"}
		assert.ErrorIs(t, req.Validate(), ErrInvalidDateRange)
	})

	t.Run("unknown type", func(t *testing.T) {
		req := ApplyLeaveRequest{LeaveType: "Vacation", StartDate: "2025-03-10", EndDate: "2025-03-10", Reason: "trip"}
		assert.Error(t, req.Validate())
	})
}

func TestUpdateLeaveRequest_Apply(t *testing.T) {
	l := Leave{LeaveType: TypeCasual, StartDate: day("2025-03-10"), EndDate: day("2025-03-10"), NumberOfDays: 1, Reason: "errand"}
	end := "2025-03-12"
	req := UpdateLeaveRequest{EndDate: &end}
	require.NoError(t, req.Validate())
	require.NoError(t, req.Apply(&l))
	assert.Equal(t, 3, l.NumberOfDays)
	assert.Equal(t, "errand", l.Reason)

	start := "2025-03-20"
	bad := UpdateLeaveRequest{StartDate: &start}
	require.NoError(t, bad.Validate())
	assert.ErrorIs(t, bad.Apply(&l), ErrInvalidDateRange)
}
