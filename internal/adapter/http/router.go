package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vulnbank/vulnbank/internal/adapter/http/handler"
	"github.com/vulnbank/vulnbank/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler       *handler.AuthHandler
	AccountHandler    *handler.AccountHandler
	TransferHandler   *handler.TransferHandler
	HealthHandler     *handler.HealthHandler
	SessionMiddleware *middleware.SessionMiddleware
	LoggingMiddleware *middleware.LoggingMiddleware
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(cfg.LoggingMiddleware.Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Operational endpoints, outside the session scope
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// Everything the bank serves rides on a session cookie
	r.Group(func(r chi.Router) {
		r.Use(cfg.SessionMiddleware.Wrap)

		r.Post("/login", cfg.AuthHandler.Login)

		r.Get("/account", cfg.AccountHandler.Overview)
		r.Get("/accounts/{number}/activity", cfg.AccountHandler.Activity)

		r.Route("/transfer", func(r chi.Router) {
			r.Get("/", cfg.TransferHandler.Form)
			r.Post("/", cfg.TransferHandler.Submit)
			r.Post("/confirm", cfg.TransferHandler.Confirm)
		})

		r.Get("/transfers", cfg.TransferHandler.ListTransfers)
	})

	return r
}
