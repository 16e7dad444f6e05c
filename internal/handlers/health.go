package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/caffalaughrey/irish-mcp-gateway/internal/config"
	"github.com/caffalaughrey/irish-mcp-gateway/internal/mcp"
)

// healthProbeTimeout bounds the whole set of advisory upstream probes.
const healthProbeTimeout = 3 * time.Second

type serviceStatus struct {
	Status string `json:"status"`
}

type healthResponse struct {
	Status    string                   `json:"status"`
	Timestamp string                   `json:"timestamp"`
	Version   string                   `json:"version"`
	Services  map[string]serviceStatus `json:"services"`
}

// HealthHandler reports gateway health plus per-tool upstream status. Tools
// without a health probe are considered healthy; any failing probe degrades
// the overall status without failing the endpoint.
func HealthHandler(registry *mcp.Registry, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthProbeTimeout)
		defer cancel()

		resp := healthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   config.Version,
			Services:  map[string]serviceStatus{},
		}

		for _, t := range registry.Tools() {
			if _, ok := t.(mcp.HealthChecker); !ok {
				continue
			}
			if mcp.ToolHealth(ctx, t) {
				resp.Services[t.Name()] = serviceStatus{Status: "healthy"}
			} else {
				resp.Services[t.Name()] = serviceStatus{Status: "unhealthy"}
				resp.Status = "degraded"
				logger.Warn("health_probe_failed", "tool", t.Name())
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
