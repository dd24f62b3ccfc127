// Copyright (c) 2026 GroupMela. All rights reserved.

// Command api is the entry point for the GroupMela admin API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect the configured document store backend (and migrate, if postgres).
//  4. Connect Redis when configured (documents backend and/or sessions).
//  5. Prime the local mirror and start live sync (unless SYNC_MODE=manual).
//  6. Wire HTTP handlers behind the session gate.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/groupmela/admin-api/internal/admin"
	"github.com/groupmela/admin-api/internal/api"
	"github.com/groupmela/admin-api/internal/auth"
	"github.com/groupmela/admin-api/internal/mirror"
	"github.com/groupmela/admin-api/internal/notify"
	"github.com/groupmela/admin-api/internal/platform/config"
	"github.com/groupmela/admin-api/internal/platform/constants"
	"github.com/groupmela/admin-api/internal/platform/migration"
	pgstore "github.com/groupmela/admin-api/internal/platform/postgres"
	redisstore "github.com/groupmela/admin-api/internal/platform/redis"
	"github.com/groupmela/admin-api/internal/platform/sec"
	"github.com/groupmela/admin-api/internal/store"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[GroupMela] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("store_backend", cfg.StoreBackend),
		slog.String("sync_mode", cfg.SyncMode),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Document Store Backend ─────────────────────────────────────────
	health := api.HealthDependencies{}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := redisClient.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
		health.CheckCache = func() error {
			return redisstore.Ping(context.Background(), redisClient)
		}
	}

	var documentStore store.Store
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing postgres pool")
			pool.Close()
		}()

		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		documentStore = store.NewPostgresStore(pool)
		health.CheckDatabase = func() error {
			return pgstore.Ping(context.Background(), pool)
		}

	case config.BackendRedis:
		documentStore = store.NewRedisStore(redisClient)

	case config.BackendMemory:
		documentStore = store.NewMemoryStore()
	}
	defer func() { _ = documentStore.Close() }()

	// ── 4. Mirror & Sync ──────────────────────────────────────────────────
	localMirror := mirror.New()
	syncer := mirror.NewSyncer(documentStore, localMirror, log)

	// Runtime context: cancelation stops the live sync loops at shutdown.
	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()

	if cfg.SyncMode == config.SyncLive {
		go func() {
			if err := syncer.Run(runCtx); err != nil {
				log.Error("live_sync_stopped", slog.Any("error", err))
			}
		}()
	} else {
		must(log, syncer.RefreshAll(startupCtx), "initial mirror load")
	}

	// ── 5. Session Gate ───────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	var sessionStore auth.SessionStore
	if redisClient != nil {
		sessionStore = auth.NewRedisSessionStore(redisClient)
	} else {
		log.Warn("redis_not_configured_sessions_in_memory")
		sessionStore = auth.NewMemorySessionStore()
	}

	authService := auth.NewService(cfg.AdminUsername, cfg.AdminPasswordHash, sessionStore, jwtSvc)
	authHandler := auth.NewHandler(authService)

	// ── 6. Console Wiring ─────────────────────────────────────────────────
	center := notify.NewCenter(constants.NotificationTTL, nil)
	adminService := admin.NewService(documentStore, localMirror, syncer, center, cfg, log)
	adminHandler := admin.NewHandler(adminService)
	notifyHandler := notify.NewHandler(center)

	liveness, readiness := api.NewHealthHandlers(health, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Admin:     adminHandler,
		Notify:    notifyHandler,
	}

	server := api.NewServer(runCtx, cfg, log, jwtSvc, authService, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Stop the sync loops before the store connections close under them.
	runCancel()

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
