package dashboard

import "context"

type DashboardService interface {
	// GetStats returns the variant that matches the caller's role kind.
	GetStats(ctx context.Context) (Stats, error)
}
