package http

import (
	"log/slog"
	"net/http"

	"github.com/emporia-hr/emporia-backend-go/internal/domain/dashboard"
	"github.com/emporia-hr/emporia-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetStats returns the counters matching the caller's role kind
	GetStats(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetStats handles GET /dashboard/stats
func (h *dashboardHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.GetStats(r.Context())
	if err != nil {
		slog.Error("DashboardStats service error", "error", err)
		response.HandleError(w, err)
		return
	}

	result := dashboard.NewResponse(stats)
	response.Success(w, response.Payload{"scope": result.Scope, "stats": result.Stats})
}
