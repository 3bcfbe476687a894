package audit

import (
	"context"
	"time"
)

type ListFilter struct {
	Action      string
	PerformedBy string
	StartDate   *time.Time
	EndDate     *time.Time
	Limit       int
	Offset      int
}

type ActionCount struct {
	Action string `json:"action"`
	Count  int64  `json:"count"`
}

// Repository is implemented by both the PostgreSQL and the MongoDB sinks.
type Repository interface {
	Create(ctx context.Context, log AuditLog) error
	List(ctx context.Context, filter ListFilter) ([]AuditLog, int64, error)
	Count(ctx context.Context) (int64, error)
	TopActions(ctx context.Context, limit int) ([]ActionCount, error)
	Recent(ctx context.Context, limit int) ([]AuditLog, error)
}
