// Package api provides the HTTP API for Tripcast.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/tripcast/tripcast/internal/api/handler"
	"github.com/tripcast/tripcast/internal/api/middleware"
	"github.com/tripcast/tripcast/internal/provider/resilience"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version         string
	Logger          zerolog.Logger
	Metrics         *middleware.Metrics
	TimelineService handler.TimelineService
	Registry        *resilience.Registry
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing())
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RequireJSON)

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.Registry)
	routeHandler := handler.NewRouteHandler(cfg.TimelineService, cfg.Logger)

	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit)
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)

	r.Route("/api", func(r chi.Router) {
		r.With(standardRateLimit).Get("/health", opsHandler.HealthCheck)
		r.With(standardRateLimit).Get("/status", opsHandler.SystemStatus)

		// Route computation fans out to geocoding, routing, traffic, and
		// weather APIs per request - strict rate limiting.
		r.With(expensiveRateLimit).Post("/calculate-route", routeHandler.CalculateRoute)
	})

	return r
}
