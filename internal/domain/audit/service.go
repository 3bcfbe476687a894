package audit

import "context"

// Logger appends audit entries. Log never fails the caller: write errors are
// logged and dropped.
type Logger interface {
	Log(ctx context.Context, entry Entry)
}

type AuditService interface {
	List(ctx context.Context, query ListQuery) (ListResponse, error)
	Stats(ctx context.Context) (StatsResponse, error)
}
