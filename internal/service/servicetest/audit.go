package servicetest

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/audit"
)

type auditRepository struct{ s *Store }

func (s *Store) AuditRepository() audit.Repository { return &auditRepository{s: s} }

func (r *auditRepository) Create(_ context.Context, log audit.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if log.ID == "" {
		log.ID = newID()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = r.s.tick()
	}
	r.s.auditLogs = append(r.s.auditLogs, log)
	return nil
}

// newestFirst returns the logs sorted by creation time descending.
func (r *auditRepository) newestFirst() []audit.AuditLog {
	logs := slices.Clone(r.s.auditLogs)
	slices.SortStableFunc(logs, func(a, b audit.AuditLog) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return logs
}

func (r *auditRepository) List(_ context.Context, filter audit.ListFilter) ([]audit.AuditLog, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	action := strings.ToLower(filter.Action)
	var matched []audit.AuditLog
	for _, log := range r.newestFirst() {
		if action != "" && !strings.Contains(strings.ToLower(log.Action), action) {
			continue
		}
		if filter.PerformedBy != "" && (log.PerformedBy == nil || *log.PerformedBy != filter.PerformedBy) {
			continue
		}
		if filter.StartDate != nil && log.CreatedAt.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && log.CreatedAt.After(*filter.EndDate) {
			continue
		}
		matched = append(matched, log)
	}
	return paginate(matched, filter.Limit, filter.Offset), int64(len(matched)), nil
}

func (r *auditRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return int64(len(r.s.auditLogs)), nil
}

func (r *auditRepository) TopActions(_ context.Context, limit int) ([]audit.ActionCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	counts := map[string]int64{}
	for _, log := range r.s.auditLogs {
		counts[log.Action]++
	}
	top := []audit.ActionCount{}
	for action, n := range counts {
		top = append(top, audit.ActionCount{Action: action, Count: n})
	}
	slices.SortFunc(top, func(a, b audit.ActionCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Action, b.Action)
	})
	return paginate(top, limit, 0), nil
}

func (r *auditRepository) Recent(_ context.Context, limit int) ([]audit.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return paginate(r.newestFirst(), limit, 0), nil
}

// AuditRecorder is a synchronous audit.Logger that keeps entries in memory.
type AuditRecorder struct {
	s *Store
}

func (s *Store) AuditLogger() *AuditRecorder { return &AuditRecorder{s: s} }

func (a *AuditRecorder) Log(ctx context.Context, entry audit.Entry) {
	log := audit.AuditLog{
		Action:      entry.Action,
		Description: entry.Description,
		TargetModel: entry.TargetModel,
		TargetID:    entry.TargetID,
		Metadata:    entry.Metadata,
		IPAddress:   audit.IPFromContext(ctx),
	}
	if entry.PerformedBy != "" {
		performer := entry.PerformedBy
		log.PerformedBy = &performer
	}
	_ = a.s.AuditRepository().Create(ctx, log)
}

// Actions lists the recorded action tags in insertion order.
func (a *AuditRecorder) Actions() []string {
	var actions []string
	for _, log := range a.s.AuditLogs() {
		actions = append(actions, log.Action)
	}
	return actions
}
