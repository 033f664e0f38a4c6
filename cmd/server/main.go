package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HammerMeetNail/quizdash/internal/assets"
	"github.com/HammerMeetNail/quizdash/internal/config"
	"github.com/HammerMeetNail/quizdash/internal/database"
	"github.com/HammerMeetNail/quizdash/internal/handlers"
	"github.com/HammerMeetNail/quizdash/internal/logging"
	"github.com/HammerMeetNail/quizdash/internal/middleware"
	"github.com/HammerMeetNail/quizdash/internal/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := logging.ParseLevel(cfg.Server.LogLevel)
	logging.SetDefaultLevel(level)
	logger := logging.New().SetLevel(level)

	logger.Info("Starting quizdash", map[string]interface{}{
		"env":  cfg.Server.Environment,
		"auth": cfg.AuthEnabled(),
	})

	logger.Info("Connecting to PostgreSQL", map[string]interface{}{
		"host": cfg.Database.Host,
		"port": cfg.Database.Port,
	})
	db, err := database.NewPostgresDB(cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()

	if cfg.Database.Migrate {
		status, err := database.ApplySchema(cfg.Database.DSN(), "migrations")
		if err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
		logger.Info("Schema ready", map[string]interface{}{
			"version": status.Version,
			"changed": status.Changed,
			"dirty":   status.Dirty,
		})
	}

	logger.Info("Connecting to Redis", map[string]interface{}{
		"addr": cfg.Redis.Addr(),
	})
	redisDB, err := database.NewRedisDB(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisDB.Close() }()

	responses := services.NewResponseService(services.NewPoolAdapter(db.Pool), logger)
	store := services.NewStore(responses,
		services.WithCache(services.NewRedisSnapshotCache(redisDB.Client, services.DefaultSnapshotKey, cfg.Dashboard.SnapshotCacheTTL)),
		services.WithFetchTimeout(cfg.Dashboard.FetchTimeout),
		services.WithLogger(logger),
	)

	manifest := assets.NewManifest(cfg.Dashboard.StaticDir)
	if err := manifest.Load(); err != nil {
		return fmt.Errorf("loading asset manifest: %w", err)
	}

	pageHandler, err := handlers.NewPageHandler(cfg.Dashboard.TemplatesDir, store, manifest, logger)
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	auth := middleware.NewBasicAuth(cfg.Admin.Username, cfg.Admin.PasswordHash)
	if !auth.Enabled() {
		logger.Warn("Operator authentication disabled; set ADMIN_PASSWORD_HASH to enable it")
	}

	handler := newRouter(routes{
		pages:     pageHandler,
		api:       handlers.NewAPIHandler(store, logger),
		health:    handlers.NewHealthHandler(db, redisDB, store),
		auth:      auth,
		csrf:      middleware.NewCSRFMiddleware(cfg.Server.Secure),
		refresh:   middleware.NewRefreshRateLimiter(middleware.NewRedisWindowCounter(redisDB.Client), int(cfg.Dashboard.RefreshLimit)),
		staticDir: cfg.Dashboard.StaticDir,
	}, cfg.Server.Secure, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// Refresh waits on the upstream fetch, bounded by FETCH_TIMEOUT.
		WriteTimeout: cfg.Dashboard.FetchTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{
		"addr": addr,
	})
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}
