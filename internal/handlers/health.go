package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/pitwall/internal/monitoring"
	"github.com/charlesng35/pitwall/pkg/response"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	manager *monitoring.HealthManager
}

// NewHealthHandler constructs a probe handler. A nil manager reports every
// probe as up with no checks.
func NewHealthHandler(manager *monitoring.HealthManager) *HealthHandler {
	if manager == nil {
		manager = monitoring.NewHealthManager()
	}
	return &HealthHandler{manager: manager}
}

// Liveness reports whether the process is running.
func (h *HealthHandler) Liveness(c *gin.Context) {
	h.write(c, h.manager.EvaluateLiveness(c.Request.Context()))
}

// Readiness reports whether the database, cache and refresh job are usable.
func (h *HealthHandler) Readiness(c *gin.Context) {
	h.write(c, h.manager.EvaluateReadiness(c.Request.Context()))
}

func (h *HealthHandler) write(c *gin.Context, report monitoring.HealthReport) {
	status := http.StatusOK
	if report.Status == monitoring.StatusDown {
		status = http.StatusServiceUnavailable
	}
	response.Success(c, status, report)
}
