package servicetest

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/attendance"
)

type attendanceRepository struct{ s *Store }

func (s *Store) AttendanceRepository() attendance.AttendanceRepository {
	return &attendanceRepository{s: s}
}

func (r *attendanceRepository) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.attendance {
		if existing.UserID == a.UserID && existing.Date.Equal(a.Date) {
			return attendance.Attendance{}, attendance.ErrAlreadyPunchedIn
		}
	}
	now := r.s.tick()
	a.ID = newID()
	a.CreatedAt, a.UpdatedAt = now, now
	r.s.attendance[a.ID] = a
	return a, nil
}

func (r *attendanceRepository) GetByUserAndDate(_ context.Context, userID string, date time.Time) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.attendance {
		if a.UserID == userID && a.Date.Equal(date) {
			return a, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r *attendanceRepository) PunchOut(_ context.Context, id string, at time.Time, workReport string, duration int) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.attendance[id]
	if !ok || a.PunchOut != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyPunchedOut
	}
	a.PunchOut = &at
	a.WorkReport = workReport
	a.Duration = duration
	a.UpdatedAt = r.s.tick()
	r.s.attendance[id] = a
	return a, nil
}

func (r *attendanceRepository) List(_ context.Context, filter attendance.ListFilter) ([]attendance.Attendance, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []attendance.Attendance
	for _, a := range r.s.attendance {
		if !r.s.inScope(filter.Scope, a.UserID) {
			continue
		}
		if filter.Date != nil && !a.Date.Equal(*filter.Date) {
			continue
		}
		u := r.s.resolveUser(r.s.users[a.UserID])
		info := &attendance.UserInfo{ID: a.UserID, Name: u.Name, Email: u.Email}
		if u.Role != nil {
			info.RoleName = u.Role.Name
		}
		if u.Department != nil {
			info.DepartmentName = u.Department.Name
		}
		a.User = info
		matched = append(matched, a)
	}
	slices.SortFunc(matched, func(a, b attendance.Attendance) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return b.PunchIn.Compare(a.PunchIn)
	})
	return paginate(matched, filter.Limit, filter.Offset), int64(len(matched)), nil
}

func (r *attendanceRepository) matching(filter attendance.StatsFilter) []attendance.Attendance {
	var rows []attendance.Attendance
	for _, a := range r.s.attendance {
		if a.Date.Before(filter.From) || !a.Date.Before(filter.To) {
			continue
		}
		u, ok := r.s.users[a.UserID]
		if !ok {
			continue
		}
		if filter.DepartmentID != "" && (u.DepartmentID == nil || *u.DepartmentID != filter.DepartmentID) {
			continue
		}
		if filter.RoleID != "" && (u.RoleID == nil || *u.RoleID != filter.RoleID) {
			continue
		}
		if filter.UserID != "" && a.UserID != filter.UserID {
			continue
		}
		rows = append(rows, a)
	}
	return rows
}

func (r *attendanceRepository) DailyTrend(_ context.Context, filter attendance.StatsFilter) ([]attendance.DayTrend, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	byDay := map[int]*attendance.DayTrend{}
	for _, a := range r.matching(filter) {
		d, ok := byDay[a.Date.Day()]
		if !ok {
			d = &attendance.DayTrend{Day: a.Date.Day()}
			byDay[d.Day] = d
		}
		switch a.Status {
		case attendance.StatusAbsent:
			d.Absent++
		case attendance.StatusHalfDay:
			d.Present++
			d.HalfDay++
		default:
			d.Present++
		}
	}
	trend := []attendance.DayTrend{}
	for _, d := range byDay {
		trend = append(trend, *d)
	}
	slices.SortFunc(trend, func(a, b attendance.DayTrend) int { return a.Day - b.Day })
	return trend, nil
}

func (r *attendanceRepository) EmployeeRollups(_ context.Context, filter attendance.StatsFilter) ([]attendance.EmployeeRollup, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	byUser := map[string]*attendance.EmployeeRollup{}
	for _, a := range r.matching(filter) {
		e, ok := byUser[a.UserID]
		if !ok {
			u := r.s.users[a.UserID]
			e = &attendance.EmployeeRollup{UserID: u.ID, Name: u.Name, Email: u.Email}
			byUser[a.UserID] = e
		}
		e.TotalDays++
		if a.Status != attendance.StatusAbsent {
			e.DaysPresent++
		}
		e.TotalDuration += int64(a.Duration)
	}
	rollups := []attendance.EmployeeRollup{}
	for _, e := range byUser {
		e.AvgDuration = float64(e.TotalDuration) / float64(e.TotalDays)
		rollups = append(rollups, *e)
	}
	slices.SortFunc(rollups, func(a, b attendance.EmployeeRollup) int {
		if a.DaysPresent != b.DaysPresent {
			return int(b.DaysPresent - a.DaysPresent)
		}
		return strings.Compare(a.Name, b.Name)
	})
	return rollups, nil
}
