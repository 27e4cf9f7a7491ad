package handler

import (
	"net/http"
	"time"

	"github.com/tripcast/tripcast/internal/api/models"
	"github.com/tripcast/tripcast/internal/api/response"
	"github.com/tripcast/tripcast/internal/provider/resilience"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version  string
	registry *resilience.Registry
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version string, registry *resilience.Registry) *OpsHandler {
	return &OpsHandler{version: version, registry: registry}
}

// HealthCheck handles GET /api/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.Health{Status: "healthy"})
}

// SystemStatus handles GET /api/status - provider circuit health.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	status := models.SystemStatus{
		Status:  "healthy",
		Version: h.version,
	}

	if h.registry != nil {
		for _, health := range h.registry.AllHealth() {
			ps := models.ProviderStatus{
				Provider:     health.Name,
				CircuitState: health.CircuitState.String(),
				LastError:    health.LastError,
			}
			if health.LastSuccessAt != nil {
				ps.LastSuccessAt = formatTimePtr(*health.LastSuccessAt)
			}
			if health.LastFailureAt != nil {
				ps.LastFailureAt = formatTimePtr(*health.LastFailureAt)
			}
			if !health.IsHealthy() {
				status.Status = "degraded"
			}
			status.Providers = append(status.Providers, ps)
		}
	}

	response.JSON(w, r, http.StatusOK, status)
}

func formatTimePtr(t time.Time) *string {
	s := t.Format(time.RFC3339)
	return &s
}
