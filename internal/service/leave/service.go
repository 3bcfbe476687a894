package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/audit"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/leave"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	leave.LeaveRepository
	audit.Logger
	now func() time.Time
}

func NewLeaveService(leaveRepository leave.LeaveRepository, auditLogger audit.Logger) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRepository: leaveRepository,
		Logger:          auditLogger,
		now:             time.Now,
	}
}

func actorFrom(ctx context.Context) (user.User, error) {
	actor, ok := user.ActorFromContext(ctx)
	if !ok {
		return user.User{}, user.ErrUnauthenticated
	}
	return actor, nil
}

func toResponses(leaves []leave.Leave) []leave.LeaveResponse {
	responses := make([]leave.LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		responses = append(responses, leave.NewLeaveResponse(l))
	}
	return responses
}

// visible reports whether l falls inside scope.
func visible(scope user.Scope, l leave.Leave) bool {
	switch {
	case scope.UserID != "":
		return l.EmployeeID == scope.UserID
	case scope.DepartmentID != "":
		return l.Employee != nil && l.Employee.DepartmentID != nil && *l.Employee.DepartmentID == scope.DepartmentID
	}
	return true
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, query leave.ListQuery) (leave.ListResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return leave.ListResponse{}, err
	}
	if err := query.Validate(); err != nil {
		return leave.ListResponse{}, err
	}

	filter := leave.ListFilter{
		Scope:     actor.DataScope(),
		Status:    leave.Status(query.Status),
		LeaveType: leave.Type(query.LeaveType),
		Limit:     query.Limit,
		Offset:    (query.Page - 1) * query.Limit,
	}
	if query.StartDate != "" {
		from, _ := validator.ParseDay(query.StartDate)
		filter.StartFrom = &from
	}
	if query.EndDate != "" {
		to, _ := validator.ParseDay(query.EndDate)
		filter.StartTo = &to
	}

	leaves, total, err := s.LeaveRepository.List(ctx, filter)
	if err != nil {
		return leave.ListResponse{}, fmt.Errorf("failed to list leaves: %w", err)
	}

	return leave.ListResponse{
		Leaves:     toResponses(leaves),
		TotalCount: total,
		Page:       query.Page,
		Limit:      query.Limit,
	}, nil
}

// MyLeaves implements leave.LeaveService.
func (s *LeaveServiceImpl) MyLeaves(ctx context.Context) ([]leave.LeaveResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	leaves, _, err := s.LeaveRepository.List(ctx, leave.ListFilter{Scope: user.Scope{UserID: actor.ID}})
	if err != nil {
		return nil, fmt.Errorf("failed to list own leaves: %w", err)
	}
	return toResponses(leaves), nil
}

// Stats implements leave.LeaveService.
func (s *LeaveServiceImpl) Stats(ctx context.Context) (leave.StatsResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return leave.StatsResponse{}, err
	}

	counts, err := s.LeaveRepository.Counts(ctx, actor.DataScope())
	if err != nil {
		return leave.StatsResponse{}, fmt.Errorf("failed to count leaves: %w", err)
	}

	return leave.StatsResponse{
		TotalLeaves:    counts.Total,
		PendingLeaves:  counts.Pending,
		ApprovedLeaves: counts.Approved,
		RejectedLeaves: counts.Rejected,
	}, nil
}

func (s *LeaveServiceImpl) get(ctx context.Context, id string) (leave.Leave, error) {
	l, err := s.LeaveRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveNotFound) {
			return leave.Leave{}, err
		}
		return leave.Leave{}, fmt.Errorf("failed to get leave: %w", err)
	}
	return l, nil
}

// Get implements leave.LeaveService. Leaves outside the caller's scope are
// reported as missing.
func (s *LeaveServiceImpl) Get(ctx context.Context, id string) (leave.LeaveResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	l, err := s.get(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if !visible(actor.DataScope(), l) {
		return leave.LeaveResponse{}, leave.ErrLeaveNotFound
	}
	return leave.NewLeaveResponse(l), nil
}

// Apply implements leave.LeaveService.
func (s *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	start, end := req.Range()
	created, err := s.LeaveRepository.Create(ctx, leave.Leave{
		EmployeeID:   actor.ID,
		LeaveType:    leave.Type(req.LeaveType),
		StartDate:    start,
		EndDate:      end,
		NumberOfDays: leave.CountDays(start, end),
		Reason:       req.Reason,
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave: %w", err)
	}

	s.Logger.Log(ctx, audit.Entry{
		Action:      audit.ActionLeaveApply,
		PerformedBy: actor.ID,
		Description: fmt.Sprintf("Applied for %s (%d days)", created.LeaveType, created.NumberOfDays),
		TargetModel: audit.TargetLeave,
		TargetID:    created.ID,
	})
	return leave.NewLeaveResponse(created), nil
}

// owned loads a pending leave the actor may modify.
func (s *LeaveServiceImpl) owned(ctx context.Context, actor user.User, id string) (leave.Leave, error) {
	l, err := s.get(ctx, id)
	if err != nil {
		return leave.Leave{}, err
	}
	if l.EmployeeID != actor.ID {
		if !visible(actor.DataScope(), l) {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, leave.ErrNotLeaveOwner
	}
	if !l.IsPending() {
		return leave.Leave{}, leave.ErrLeaveAlreadyProcessed
	}
	return l, nil
}

// Update implements leave.LeaveService.
func (s *LeaveServiceImpl) Update(ctx context.Context, id string, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	l, err := s.owned(ctx, actor, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if err := req.Apply(&l); err != nil {
		return leave.LeaveResponse{}, err
	}

	updated, err := s.LeaveRepository.UpdatePending(ctx, l)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveNotFound) || errors.Is(err, leave.ErrLeaveAlreadyProcessed) {
			return leave.LeaveResponse{}, err
		}
		return leave.LeaveResponse{}, fmt.Errorf("failed to update leave: %w", err)
	}

	s.Logger.Log(ctx, audit.Entry{
		Action:      audit.ActionLeaveUpdate,
		PerformedBy: actor.ID,
		Description: "Updated leave request",
		TargetModel: audit.TargetLeave,
		TargetID:    updated.ID,
	})
	return leave.NewLeaveResponse(updated), nil
}

// Withdraw implements leave.LeaveService.
func (s *LeaveServiceImpl) Withdraw(ctx context.Context, id string) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	l, err := s.owned(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.LeaveRepository.DeletePending(ctx, l.ID); err != nil {
		if errors.Is(err, leave.ErrLeaveNotFound) || errors.Is(err, leave.ErrLeaveAlreadyProcessed) {
			return err
		}
		return fmt.Errorf("failed to withdraw leave: %w", err)
	}

	s.Logger.Log(ctx, audit.Entry{
		Action:      audit.ActionLeaveWithdraw,
		PerformedBy: actor.ID,
		Description: "Withdrew leave request",
		TargetModel: audit.TargetLeave,
		TargetID:    l.ID,
	})
	return nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, id string, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
	return s.resolve(ctx, id, leave.StatusApproved, req.Comments)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, id string, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
	return s.resolve(ctx, id, leave.StatusRejected, req.Comments)
}

func (s *LeaveServiceImpl) resolve(ctx context.Context, id string, status leave.Status, comments string) (leave.LeaveResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	l, err := s.get(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if !l.IsPending() {
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	// Managers may only review their own department.
	if actor.Kind() == user.RoleKindManager {
		inTeam := actor.DepartmentID != nil && l.Employee != nil && l.Employee.DepartmentID != nil &&
			*l.Employee.DepartmentID == *actor.DepartmentID
		if !inTeam {
			if status == leave.StatusApproved {
				return leave.LeaveResponse{}, leave.ErrNotTeamMemberApprove
			}
			return leave.LeaveResponse{}, leave.ErrNotTeamMemberReject
		}
	}

	resolved, err := s.LeaveRepository.Resolve(ctx, l.ID, status, actor.ID, comments, s.now().UTC())
	if err != nil {
		if errors.Is(err, leave.ErrLeaveNotFound) || errors.Is(err, leave.ErrLeaveAlreadyProcessed) {
			return leave.LeaveResponse{}, err
		}
		return leave.LeaveResponse{}, fmt.Errorf("failed to %s leave: %w", verb(status), err)
	}

	action, description := audit.ActionLeaveApprove, "Approved leave"
	if status == leave.StatusRejected {
		action, description = audit.ActionLeaveReject, "Rejected leave"
	}
	if resolved.Employee != nil {
		description += " for " + resolved.Employee.Name
	}
	s.Logger.Log(ctx, audit.Entry{
		Action:      action,
		PerformedBy: actor.ID,
		Description: description,
		TargetModel: audit.TargetLeave,
		TargetID:    resolved.ID,
	})
	return leave.NewLeaveResponse(resolved), nil
}

func verb(status leave.Status) string {
	if status == leave.StatusRejected {
		return "reject"
	}
	return "approve"
}
