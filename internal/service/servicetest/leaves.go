package servicetest

import (
	"context"
	"slices"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/leave"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
)

type leaveRepository struct{ s *Store }

func (s *Store) LeaveRepository() leave.LeaveRepository { return &leaveRepository{s: s} }

func (r *leaveRepository) Create(_ context.Context, l leave.Leave) (leave.Leave, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.tick()
	l.ID = newID()
	l.Status = leave.StatusPending
	l.CreatedAt, l.UpdatedAt = now, now
	r.s.leaves[l.ID] = l
	return r.s.resolveLeave(l), nil
}

func (r *leaveRepository) GetByID(_ context.Context, id string) (leave.Leave, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l, ok := r.s.leaves[id]
	if !ok {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	return r.s.resolveLeave(l), nil
}

func (r *leaveRepository) List(_ context.Context, filter leave.ListFilter) ([]leave.Leave, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []leave.Leave
	for _, l := range r.s.leaves {
		if !r.s.inScope(filter.Scope, l.EmployeeID) {
			continue
		}
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		if filter.LeaveType != "" && l.LeaveType != filter.LeaveType {
			continue
		}
		if filter.StartFrom != nil && l.StartDate.Before(*filter.StartFrom) {
			continue
		}
		if filter.StartTo != nil && l.StartDate.After(*filter.StartTo) {
			continue
		}
		matched = append(matched, r.s.resolveLeave(l))
	}
	slices.SortFunc(matched, func(a, b leave.Leave) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return paginate(matched, filter.Limit, filter.Offset), int64(len(matched)), nil
}

func (r *leaveRepository) pending(id string) (leave.Leave, error) {
	l, ok := r.s.leaves[id]
	if !ok {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	if !l.IsPending() {
		return leave.Leave{}, leave.ErrLeaveAlreadyProcessed
	}
	return l, nil
}

func (r *leaveRepository) UpdatePending(_ context.Context, l leave.Leave) (leave.Leave, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, err := r.pending(l.ID)
	if err != nil {
		return leave.Leave{}, err
	}
	stored.LeaveType = l.LeaveType
	stored.StartDate = l.StartDate
	stored.EndDate = l.EndDate
	stored.NumberOfDays = l.NumberOfDays
	stored.Reason = l.Reason
	stored.UpdatedAt = r.s.tick()
	r.s.leaves[l.ID] = stored
	return r.s.resolveLeave(stored), nil
}

func (r *leaveRepository) Resolve(_ context.Context, id string, status leave.Status, approverID, comments string, at time.Time) (leave.Leave, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, err := r.pending(id)
	if err != nil {
		return leave.Leave{}, err
	}
	stored.Status = status
	stored.ApproverID = &approverID
	stored.ApproverComments = comments
	stored.ApprovedAt = &at
	stored.UpdatedAt = r.s.tick()
	r.s.leaves[id] = stored
	return r.s.resolveLeave(stored), nil
}

func (r *leaveRepository) DeletePending(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, err := r.pending(id); err != nil {
		return err
	}
	delete(r.s.leaves, id)
	return nil
}

func (r *leaveRepository) Counts(_ context.Context, scope user.Scope) (leave.Counts, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var counts leave.Counts
	for _, l := range r.s.leaves {
		if !r.s.inScope(scope, l.EmployeeID) {
			continue
		}
		counts.Total++
		switch l.Status {
		case leave.StatusPending:
			counts.Pending++
		case leave.StatusApproved:
			counts.Approved++
		case leave.StatusRejected:
			counts.Rejected++
		}
	}
	return counts, nil
}
