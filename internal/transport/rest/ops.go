package rest

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/myenglish-vocab/internal/transport/middleware"
)

// NewOpsHandler routes the health checks and /metrics behind the standard
// middleware chain.
func NewOpsHandler(log *slog.Logger, health *HealthHandler, gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(log),
		middleware.Logger(log),
	)(mux)
}
