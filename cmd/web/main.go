// Command web runs the business metrics dashboard HTTP server.
//
// It loads the e-commerce dataset from CSV files, builds the denormalized
// master record set, and serves executive summary metrics over a JSON API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"shoppulse/internal/config"
	apierrors "shoppulse/internal/errors"
	"shoppulse/internal/infrastructure"
	"shoppulse/internal/middleware"
	"shoppulse/internal/services"
	transport "shoppulse/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()

	providers, err := infrastructure.InitializeOTel(nil, logger)
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service := services.NewDashboardService(cfg, logger)

	logger.InfoContext(ctx, "loading dataset", slog.String("data_dir", cfg.Paths.DataDir))
	if err := service.Reload(ctx); err != nil {
		return fmt.Errorf("initial data load: %w", err)
	}

	router := newRouter(cfg, logger, service)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "server starting", slog.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.String("error", err.Error()))
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		logger.Error("telemetry shutdown failed", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
	return nil
}

// newRouter assembles the middleware chain and mounts the API routes
func newRouter(cfg *config.Config, logger *slog.Logger, service *services.DashboardService) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.SecurityHeaders)

	rateLimiter := middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst, logger)
	r.Use(rateLimiter.Handler)

	errorHandler := apierrors.NewErrorHandler(logger, false)
	handler := transport.NewDashboardHandler(service, logger, errorHandler)

	r.Mount("/api", handler.Routes())
	r.Handle("/metrics", transport.MetricsHandler())

	return r
}
