package handler

import (
	"net/http"
	"time"

	"employee-service/internal/metrics"
	"employee-service/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-kratos/kratos/v2/log"
)

type RouterOptions struct {
	RequestTimeout time.Duration
	// Auth guards the /employees routes. Nil leaves them open.
	Auth    func(http.Handler) http.Handler
	Metrics *metrics.Metrics
	Logger  log.Logger
}

// NewRouter wires the employee, health and metrics endpoints.
func NewRouter(h *Handler, health *HealthHandler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if opts.Logger != nil {
		r.Use(middleware.RequestLogger(opts.Logger))
	}
	r.Use(chimiddleware.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(opts.RequestTimeout))
	}
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}

	// Health check endpoints (no auth required)
	r.Get("/health/live", health.Live)
	r.Get("/health/ready", health.Ready)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	r.Route("/employees", func(r chi.Router) {
		if opts.Auth != nil {
			r.Use(opts.Auth)
		}
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	return r
}
