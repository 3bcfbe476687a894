package http

import (
	"log/slog"
	"net/http"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/audit"
	"github.com/emporia-hr/emporia-backend-go/internal/handler/http/response"
)

type AuditHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
}

type auditHandlerImpl struct {
	auditService audit.AuditService
}

func NewAuditHandler(auditService audit.AuditService) AuditHandler {
	return &auditHandlerImpl{auditService: auditService}
}

// List handles GET /audit-logs
func (h *auditHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := audit.ListQuery{
		Action:      r.URL.Query().Get("action"),
		PerformedBy: r.URL.Query().Get("performedBy"),
		StartDate:   r.URL.Query().Get("startDate"),
		EndDate:     r.URL.Query().Get("endDate"),
		Page:        queryInt(r, "page"),
		Limit:       queryInt(r, "limit"),
	}

	result, err := h.auditService.List(r.Context(), query)
	if err != nil {
		slog.Error("ListAuditLogs service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.List(w, "auditLogs", result.AuditLogs, response.Page{
		Count: result.TotalCount,
		Page:  result.Page,
		Limit: result.Limit,
	})
}

// Stats handles GET /audit-logs/stats
func (h *auditHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.auditService.Stats(r.Context())
	if err != nil {
		slog.Error("AuditStats service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, response.Payload{"stats": stats})
}
