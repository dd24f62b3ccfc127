// Copyright (c) 2026 GroupMela. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
console handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/groupmela/admin-api/internal/admin"
	"github.com/groupmela/admin-api/internal/auth"
	"github.com/groupmela/admin-api/internal/notify"
	"github.com/groupmela/admin-api/internal/platform/config"
	"github.com/groupmela/admin-api/internal/platform/constants"
	"github.com/groupmela/admin-api/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all console HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the session endpoints (login, logout).
	Auth *auth.Handler

	// Admin handles every console operation behind the session gate.
	Admin *admin.Handler

	// Notify handles the toast list and event stream.
	Notify *notify.Handler
}

// # Server Initialization

/*
NewServer constructs the chi router with the full middleware chain and
registers all route groups.

Everything under /api/v1/admin and /api/v1/notifications requires a live
session; login, the health probes, and the public view counter are open.

Parameters:
  - context: Governs the rate limiter's janitor goroutine.
  - cfg: Server timing, port, and CORS settings.
  - log: Structured logger for the request middleware.
  - verifier: Verifies bearer tokens into session claims.
  - sessions: Confirms the referenced session is still alive.
  - h: The handler registry to mount.

Returns:
  - *Server: A fully wired server, not yet listening.
*/
func NewServer(
	context context.Context,
	cfg *config.Config,
	log *slog.Logger,
	verifier middleware.TokenVerifier,
	sessions middleware.SessionChecker,
	h Handlers,
) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	requireAdmin := middleware.RequireAdmin(sessions)
	r.Route("/api/v1", func(api chi.Router) {
		api.Group(func(timed chi.Router) {
			timed.Use(chimw.Timeout(constants.GlobalRequestTimeout))
			timed.Mount("/auth", h.Auth.Routes(requireAdmin))
			timed.Mount("/public", h.Admin.PublicRoutes())

			timed.Group(func(protected chi.Router) {
				protected.Use(requireAdmin)
				protected.Mount("/admin", h.Admin.Routes())
				protected.Mount("/notifications", h.Notify.Routes())
			})
		})

		// The event stream holds its connection open indefinitely, so it
		// mounts outside the timeout group.
		api.With(requireAdmin).Get("/notifications/stream", h.Notify.Stream)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
