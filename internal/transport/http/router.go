package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-catalog/internal/metrics"
)

// NewRouter mounts the catalog routes with recovery, request ids, request
// logging and metrics.
func NewRouter(h *CatalogHandler, log *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(log))
	r.Use(chiMiddleware.RequestID)
	r.Use(requestLogger(log))
	r.Use(metrics.Middleware())

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/{category}", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/filters", h.GetFilters)
		r.Get("/featured", h.ListFeatured)
		r.Get("/{productURL}", h.GetProduct)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found", "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
	})

	return r
}
