package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/dashboard"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"golang.org/x/sync/errgroup"
)

const fallbackDepartmentName = "Your Department"

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	loc *time.Location
	now func() time.Time
}

func NewDashboardService(dashboardRepository dashboard.DashboardRepository, loc *time.Location) dashboard.DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardServiceImpl{
		DashboardRepository: dashboardRepository,
		loc:                 loc,
		now:                 time.Now,
	}
}

// monthRange returns [first day of this month, first day of next month).
func (s *DashboardServiceImpl) monthRange() (time.Time, time.Time) {
	now := s.now().In(s.loc)
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
	return from, from.AddDate(0, 1, 0)
}

// GetStats implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetStats(ctx context.Context) (dashboard.Stats, error) {
	actor, ok := user.ActorFromContext(ctx)
	if !ok {
		return nil, user.ErrUnauthenticated
	}

	switch kind := actor.Kind(); {
	case kind.IsAdmin():
		return s.organization(ctx)
	case kind == user.RoleKindManager && actor.DepartmentID != nil:
		name := fallbackDepartmentName
		if actor.Department != nil && actor.Department.Name != "" {
			name = actor.Department.Name
		}
		return s.department(ctx, *actor.DepartmentID, name)
	default:
		return s.personal(ctx, actor.ID)
	}
}

func (s *DashboardServiceImpl) organization(ctx context.Context) (dashboard.Stats, error) {
	var (
		stats     dashboard.OrganizationStats
		employees dashboard.EmployeeCounts
		leaves    dashboard.LeaveCounts
	)
	from, to := s.monthRange()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = s.DashboardRepository.CountEmployees(gctx, "")
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalDepartments, err = s.DashboardRepository.CountDepartments(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		leaves, err = s.DashboardRepository.CountLeaves(gctx, "", "")
		return err
	})
	g.Go(func() error {
		var err error
		stats.NewJoinersThisMonth, err = s.DashboardRepository.CountJoiners(gctx, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to get organization stats: %w", err)
	}

	stats.TotalEmployees = employees.Total
	stats.ActiveEmployees = employees.Active
	stats.PendingLeaves = leaves.Pending
	return stats, nil
}

func (s *DashboardServiceImpl) department(ctx context.Context, departmentID, name string) (dashboard.Stats, error) {
	var (
		employees dashboard.EmployeeCounts
		leaves    dashboard.LeaveCounts
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = s.DashboardRepository.CountEmployees(gctx, departmentID)
		return err
	})
	g.Go(func() error {
		var err error
		leaves, err = s.DashboardRepository.CountLeaves(gctx, departmentID, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to get department stats: %w", err)
	}

	return dashboard.DepartmentStats{
		DepartmentName:  name,
		TotalEmployees:  employees.Total,
		ActiveEmployees: employees.Active,
		PendingLeaves:   leaves.Pending,
	}, nil
}

func (s *DashboardServiceImpl) personal(ctx context.Context, userID string) (dashboard.Stats, error) {
	var (
		leaves dashboard.LeaveCounts
		days   int64
	)
	from, to := s.monthRange()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		leaves, err = s.DashboardRepository.CountLeaves(gctx, "", userID)
		return err
	})
	g.Go(func() error {
		var err error
		days, err = s.DashboardRepository.CountAttendanceDays(gctx, userID, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to get personal stats: %w", err)
	}

	return dashboard.PersonalStats{
		MyPendingLeaves:         leaves.Pending,
		MyTotalLeaves:           leaves.Total,
		MyApprovedLeaves:        leaves.Approved,
		AttendanceDaysThisMonth: days,
	}, nil
}
