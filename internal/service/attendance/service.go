package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/attendance"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/audit"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"golang.org/x/sync/errgroup"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	audit.Logger
	loc *time.Location
	now func() time.Time
}

type Option func(*AttendanceServiceImpl)

// WithClock replaces the wall clock used for punches and "today".
func WithClock(now func() time.Time) Option {
	return func(s *AttendanceServiceImpl) {
		s.now = now
	}
}

func NewAttendanceService(attendanceRepository attendance.AttendanceRepository, auditLogger audit.Logger, loc *time.Location, opts ...Option) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	s := &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		Logger:               auditLogger,
		loc:                  loc,
		now:                  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func actorFrom(ctx context.Context) (user.User, error) {
	actor, ok := user.ActorFromContext(ctx)
	if !ok {
		return user.User{}, user.ErrUnauthenticated
	}
	return actor, nil
}

func (s *AttendanceServiceImpl) today() (time.Time, time.Time) {
	now := s.now().In(s.loc)
	return now, attendance.DayOf(now, s.loc)
}

// Status implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Status(ctx context.Context) (attendance.StatusResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	_, day := s.today()
	record, err := s.AttendanceRepository.GetByUserAndDate(ctx, actor.ID, day)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.StatusResponse{State: attendance.StateNotPunchedIn}, nil
		}
		return attendance.StatusResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	resp := attendance.NewAttendanceResponse(record)
	return attendance.StatusResponse{State: record.State(), Data: &resp}, nil
}

// PunchIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) PunchIn(ctx context.Context, req attendance.PunchInRequest) (attendance.AttendanceResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now, day := s.today()
	created, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
		UserID:    actor.ID,
		Date:      day,
		PunchIn:   now,
		ScrumNote: req.ScrumNote,
		Status:    attendance.StatusPresent,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyPunchedIn) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to punch in: %w", err)
	}

	s.Logger.Log(ctx, audit.Entry{
		Action:      audit.ActionAttendancePunchIn,
		PerformedBy: actor.ID,
		Description: "Punched in",
		TargetModel: audit.TargetAttendance,
		TargetID:    created.ID,
	})
	return attendance.NewAttendanceResponse(created), nil
}

// PunchOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) PunchOut(ctx context.Context, req attendance.PunchOutRequest) (attendance.AttendanceResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now, day := s.today()
	record, err := s.AttendanceRepository.GetByUserAndDate(ctx, actor.ID, day)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNoPunchInToday
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record.PunchOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyPunchedOut
	}

	duration := attendance.DurationMinutes(record.PunchIn, now)
	updated, err := s.AttendanceRepository.PunchOut(ctx, record.ID, now, req.WorkReport, duration)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyPunchedOut) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to punch out: %w", err)
	}

	s.Logger.Log(ctx, audit.Entry{
		Action:      audit.ActionAttendancePunchOut,
		PerformedBy: actor.ID,
		Description: fmt.Sprintf("Punched out after %d minutes", duration),
		TargetModel: audit.TargetAttendance,
		TargetID:    updated.ID,
	})
	return attendance.NewAttendanceResponse(updated), nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, query attendance.ListQuery) (attendance.ListResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return attendance.ListResponse{}, err
	}
	if err := query.Validate(); err != nil {
		return attendance.ListResponse{}, err
	}

	records, total, err := s.AttendanceRepository.List(ctx, attendance.ListFilter{
		Scope:  actor.DataScope(),
		Date:   query.Day(),
		Limit:  query.Limit,
		Offset: (query.Page - 1) * query.Limit,
	})
	if err != nil {
		return attendance.ListResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewAttendanceResponse(r))
	}

	return attendance.ListResponse{
		Records:    responses,
		TotalCount: total,
		Page:       query.Page,
		Limit:      query.Limit,
	}, nil
}

// Stats implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Stats(ctx context.Context, query attendance.StatsQuery) (attendance.StatsResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return attendance.StatsResponse{}, err
	}
	if err := query.Validate(s.now().In(s.loc)); err != nil {
		return attendance.StatsResponse{}, err
	}

	from := time.Date(query.Year, time.Month(query.Month), 1, 0, 0, 0, 0, s.loc)
	to := from.AddDate(0, 1, 0)
	daysInMonth := to.AddDate(0, 0, -1).Day()

	filter := attendance.StatsFilter{
		From:         from,
		To:           to,
		DepartmentID: query.Department,
		RoleID:       query.Role,
	}
	scope := actor.DataScope()
	switch {
	case scope.DepartmentID != "":
		filter.DepartmentID = scope.DepartmentID
	case scope.UserID != "":
		filter.UserID = scope.UserID
	}

	var (
		trend   []attendance.DayTrend
		rollups []attendance.EmployeeRollup
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		trend, err = s.AttendanceRepository.DailyTrend(gctx, filter)
		if err != nil {
			return fmt.Errorf("failed to get daily attendance trend: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rollups, err = s.AttendanceRepository.EmployeeRollups(gctx, filter)
		if err != nil {
			return fmt.Errorf("failed to get employee attendance: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return attendance.StatsResponse{}, err
	}

	employeeStats := make([]attendance.EmployeeStat, 0, len(rollups))
	for _, r := range rollups {
		employeeStats = append(employeeStats, attendance.EmployeeStat{
			UserID:               r.UserID,
			Name:                 r.Name,
			Email:                r.Email,
			TotalDays:            r.TotalDays,
			DaysPresent:          r.DaysPresent,
			TotalDuration:        r.TotalDuration,
			AvgDuration:          int64(math.Round(r.AvgDuration)),
			AttendancePercentage: float64(r.DaysPresent) / float64(daysInMonth) * 100,
		})
	}
	if trend == nil {
		trend = []attendance.DayTrend{}
	}

	return attendance.StatsResponse{
		Period:        attendance.Period{Month: query.Month, Year: query.Year},
		DailyTrend:    trend,
		EmployeeStats: employeeStats,
	}, nil
}
