package servicetest

import (
	"context"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/attendance"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/dashboard"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/leave"
)

type dashboardRepository struct{ s *Store }

func (s *Store) DashboardRepository() dashboard.DashboardRepository {
	return &dashboardRepository{s: s}
}

func (r *dashboardRepository) CountEmployees(_ context.Context, departmentID string) (dashboard.EmployeeCounts, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var counts dashboard.EmployeeCounts
	for _, u := range r.s.users {
		if u.IsDeleted {
			continue
		}
		if departmentID != "" && (u.DepartmentID == nil || *u.DepartmentID != departmentID) {
			continue
		}
		counts.Total++
		if u.IsActive() {
			counts.Active++
		}
	}
	return counts, nil
}

func (r *dashboardRepository) CountDepartments(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return int64(len(r.s.departments)), nil
}

func (r *dashboardRepository) CountJoiners(_ context.Context, from, to time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var total int64
	for _, u := range r.s.users {
		if !u.IsDeleted && !u.DateOfJoining.Before(from) && u.DateOfJoining.Before(to) {
			total++
		}
	}
	return total, nil
}

func (r *dashboardRepository) CountLeaves(_ context.Context, departmentID, userID string) (dashboard.LeaveCounts, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var counts dashboard.LeaveCounts
	for _, l := range r.s.leaves {
		u, ok := r.s.users[l.EmployeeID]
		if !ok || u.IsDeleted {
			continue
		}
		if departmentID != "" && (u.DepartmentID == nil || *u.DepartmentID != departmentID) {
			continue
		}
		if userID != "" && l.EmployeeID != userID {
			continue
		}
		counts.Total++
		switch l.Status {
		case leave.StatusPending:
			counts.Pending++
		case leave.StatusApproved:
			counts.Approved++
		}
	}
	return counts, nil
}

func (r *dashboardRepository) CountAttendanceDays(_ context.Context, userID string, from, to time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var total int64
	for _, a := range r.s.attendance {
		if a.UserID == userID && !a.Date.Before(from) && a.Date.Before(to) && a.Status != attendance.StatusAbsent {
			total++
		}
	}
	return total, nil
}
