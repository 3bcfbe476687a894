package audit

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/user"
	"github.com/emporia-hr/emporia-backend-go/internal/pkg/validator"
)

const DefaultPageLimit = 20

type ListQuery struct {
	Action      string
	PerformedBy string
	StartDate   string
	EndDate     string
	Page        int
	Limit       int
}

func (q *ListQuery) Validate() error {
	var errs validator.ValidationErrors
	q.Action = strings.TrimSpace(q.Action)
	if q.PerformedBy != "" && !validator.IsValidUUID(q.PerformedBy) {
		errs = append(errs, validator.ValidationError{Field: "performedBy", Message: "performedBy must be a valid id"})
	}
	if q.StartDate != "" {
		if _, ok := validator.ParseDay(q.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "startDate", Message: "startDate must be a date (YYYY-MM-DD)"})
		}
	}
	if q.EndDate != "" {
		if _, ok := validator.ParseDay(q.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "endDate", Message: "endDate must be a date (YYYY-MM-DD)"})
		}
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageLimit
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AuditLogResponse struct {
	ID          string          `json:"id"`
	Action      string          `json:"action"`
	PerformedBy *user.Summary   `json:"performedBy"`
	Description string          `json:"description"`
	TargetModel string          `json:"targetModel,omitempty"`
	TargetID    string          `json:"targetId,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	IPAddress   string          `json:"ipAddress,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type ListResponse struct {
	AuditLogs  []AuditLogResponse
	TotalCount int64
	Page       int
	Limit      int
}

type StatsResponse struct {
	TotalLogs        int64              `json:"totalLogs"`
	ActionStats      []ActionCount      `json:"actionStats"`
	RecentActivities []AuditLogResponse `json:"recentActivities"`
}
