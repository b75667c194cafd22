package api

import (
	"context"
	"net/http"
	"time"

	"github.com/okian/draftboard/internal/adapters/repository"
	"github.com/okian/draftboard/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthDependencies reports what the server is currently serving.
type HealthDependencies interface {
	Info(ctx context.Context) (repository.Info, error)
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	deps HealthDependencies
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps HealthDependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

type healthResponse struct {
	Status   string    `json:"status"`
	Season   int       `json:"season,omitempty"`
	Rows     int       `json:"rows"`
	LoadedAt time.Time `json:"loaded_at,omitzero"`
}

// HandleHealth handles GET /healthz. It reports 503 until a board is loaded.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	info, err := h.deps.Info(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "loading"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Season:   info.Season,
		Rows:     info.Rows,
		LoadedAt: info.LoadedAt,
	})
}

// MetricsHandler serves the custom Prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
}
