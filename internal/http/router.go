// Package httpapi assembles the HTTP surface: routing, middleware, and the
// operational endpoints that sit outside the ticketing domain.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ticketledger/internal/platform/middleware"
	"ticketledger/internal/ticketing/handler"
)

// HealthChecker reports backend liveness. Backends that are not configured
// simply do not appear in the check list.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// NewRouter wires the full route tree. All ledger routes require an
// authenticated principal; /healthz and /metrics stay open for probes and
// scrapers.
func NewRouter(h *handler.Handler, signingKey []byte, logger *slog.Logger, checks map[string]HealthChecker) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/healthz", handleHealthz(checks))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePrincipal(signingKey, logger))
		h.Register(r)
		h.RegisterAdmin(r)
	})

	return r
}

func handleHealthz(checks map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		result := make(map[string]string, len(checks)+1)
		result["status"] = "ok"
		for name, check := range checks {
			if err := check.Health(r.Context()); err != nil {
				status = http.StatusServiceUnavailable
				result[name] = err.Error()
				result["status"] = "degraded"
				continue
			}
			result[name] = "ok"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(result)
	}
}
