package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/audit"
	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

const (
	topActionsLimit = 10
	recentLimit     = 10
)

type AuditServiceImpl struct {
	audit.Repository
	user.UserRepository
}

func NewAuditService(auditRepository audit.Repository, userRepository user.UserRepository) audit.AuditService {
	return &AuditServiceImpl{
		Repository:     auditRepository,
		UserRepository: userRepository,
	}
}

// List implements audit.AuditService.
func (s *AuditServiceImpl) List(ctx context.Context, query audit.ListQuery) (audit.ListResponse, error) {
	if err := query.Validate(); err != nil {
		return audit.ListResponse{}, err
	}

	filter := audit.ListFilter{
		Action:      query.Action,
		PerformedBy: query.PerformedBy,
		Limit:       query.Limit,
		Offset:      (query.Page - 1) * query.Limit,
	}
	if query.StartDate != "" {
		start, _ := validator.ParseDay(query.StartDate)
		filter.StartDate = &start
	}
	if query.EndDate != "" {
		end, _ := validator.ParseDay(query.EndDate)
		end = end.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}

	logs, total, err := s.Repository.List(ctx, filter)
	if err != nil {
		return audit.ListResponse{}, fmt.Errorf("failed to list audit logs: %w", err)
	}

	responses, err := s.withPerformers(ctx, logs)
	if err != nil {
		return audit.ListResponse{}, err
	}

	return audit.ListResponse{
		AuditLogs:  responses,
		TotalCount: total,
		Page:       query.Page,
		Limit:      query.Limit,
	}, nil
}

// Stats implements audit.AuditService.
func (s *AuditServiceImpl) Stats(ctx context.Context) (audit.StatsResponse, error) {
	var (
		total   int64
		actions []audit.ActionCount
		recent  []audit.AuditLog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.Repository.Count(gctx)
		if err != nil {
			return fmt.Errorf("failed to count audit logs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		actions, err = s.Repository.TopActions(gctx, topActionsLimit)
		if err != nil {
			return fmt.Errorf("failed to aggregate audit actions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		recent, err = s.Repository.Recent(gctx, recentLimit)
		if err != nil {
			return fmt.Errorf("failed to get recent audit logs: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return audit.StatsResponse{}, err
	}

	recentResponses, err := s.withPerformers(ctx, recent)
	if err != nil {
		return audit.StatsResponse{}, err
	}
	if actions == nil {
		actions = []audit.ActionCount{}
	}

	return audit.StatsResponse{
		TotalLogs:        total,
		ActionStats:      actions,
		RecentActivities: recentResponses,
	}, nil
}

// withPerformers resolves performedBy ids to user summaries in one lookup.
func (s *AuditServiceImpl) withPerformers(ctx context.Context, logs []audit.AuditLog) ([]audit.AuditLogResponse, error) {
	ids := make([]string, 0, len(logs))
	for _, log := range logs {
		if log.PerformedBy != nil {
			ids = append(ids, *log.PerformedBy)
		}
	}

	summaries := map[string]user.Summary{}
	if len(ids) > 0 {
		var err error
		summaries, err = s.UserRepository.GetSummaries(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve audit performers: %w", err)
		}
	}

	responses := make([]audit.AuditLogResponse, 0, len(logs))
	for _, log := range logs {
		resp := audit.AuditLogResponse{
			ID:          log.ID,
			Action:      log.Action,
			Description: log.Description,
			TargetModel: log.TargetModel,
			TargetID:    log.TargetID,
			Metadata:    log.Metadata,
			IPAddress:   log.IPAddress,
			CreatedAt:   log.CreatedAt,
		}
		if log.PerformedBy != nil {
			if summary, ok := summaries[*log.PerformedBy]; ok {
				resp.PerformedBy = &summary
			}
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
