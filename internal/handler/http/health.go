package http

import (
	"net/http"

	"github.com/emporia-hr/emporia-backend-go/internal/handler/http/response"
)

// HealthCheck handles GET /api/health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.SuccessWithMessage(w, "Emporia API is running", nil)
}
