package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/audit"
)

const defaultWriteTimeout = 5 * time.Second

type LoggerImpl struct {
	audit.Repository
	timeout time.Duration
	now     func() time.Time
}

func NewLogger(repository audit.Repository) *LoggerImpl {
	return &LoggerImpl{
		Repository: repository,
		timeout:    defaultWriteTimeout,
		now:        time.Now,
	}
}

// Log implements audit.Logger. The write outlives request cancellation so a
// client hanging up does not lose the entry.
func (l *LoggerImpl) Log(ctx context.Context, entry audit.Entry) {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
	defer cancel()

	log := audit.AuditLog{
		Action:      entry.Action,
		Description: entry.Description,
		TargetModel: entry.TargetModel,
		TargetID:    entry.TargetID,
		Metadata:    entry.Metadata,
		IPAddress:   audit.IPFromContext(ctx),
		CreatedAt:   l.now().UTC(),
	}
	if entry.PerformedBy != "" {
		performer := entry.PerformedBy
		log.PerformedBy = &performer
	}

	if err := l.Repository.Create(writeCtx, log); err != nil {
		slog.Error("failed to write audit log", "action", entry.Action, "target_id", entry.TargetID, "error", err)
	}
}
