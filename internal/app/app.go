package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"github.com/satyenduM/Quant-Matrix-EDA-App/internal/config"
	"github.com/satyenduM/Quant-Matrix-EDA-App/internal/dataset"
	apierrors "github.com/satyenduM/Quant-Matrix-EDA-App/internal/errors"
	"github.com/satyenduM/Quant-Matrix-EDA-App/internal/infrastructure"
	custommw "github.com/satyenduM/Quant-Matrix-EDA-App/internal/middleware"
	"github.com/satyenduM/Quant-Matrix-EDA-App/internal/services"
	transporthttp "github.com/satyenduM/Quant-Matrix-EDA-App/internal/transport/http"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Application wires configuration, logging, metrics, the dataset store, the
// services and the HTTP server together.
type Application struct {
	config  *config.Config
	logger  *slog.Logger
	metrics *infrastructure.Metrics

	store         *dataset.Store
	dataService   *services.DataService
	healthService *services.HealthService

	router chi.Router
	server *http.Server
}

// New builds the application from configuration.
func New() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	slog.SetDefault(logger)

	metrics, err := infrastructure.NewMetrics(Version, logger)
	if err != nil {
		return nil, fmt.Errorf("create metrics: %w", err)
	}

	app := &Application{
		config:  cfg,
		logger:  logger,
		metrics: metrics,
	}

	loader := dataset.NewFileLoader(cfg.Dataset.Path, cfg.DelimiterRune(), logger)
	app.store = dataset.NewStore(loader, logger)
	app.dataService = services.NewDataService(app.store, logger)
	app.healthService = services.NewHealthService(Version, app.store, logger)

	app.router = app.buildRouter()
	app.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("application initialized",
		slog.String("version", Version),
		slog.Int("port", cfg.Server.Port),
		slog.String("dataset", cfg.Dataset.Path))
	return app, nil
}

func (a *Application) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)
	r.Use(custommw.StripSlashes)
	r.Use(custommw.StructuredLogger(a.logger))
	r.Use(custommw.Recoverer(a.logger))
	r.Use(custommw.RequestMetrics(a.metrics))
	r.Use(custommw.SecurityHeaders)
	r.Use(custommw.Timeout(a.config.Server.RequestTimeout, a.logger))

	if a.config.Security.EnableCORS {
		r.Use(custommw.CORS(custommw.CORSConfig{
			AllowedOrigins: a.config.Security.AllowedOrigins,
		}))
	}
	if a.config.Security.RateLimit.Enabled {
		limiter := custommw.NewRateLimiter(
			a.config.Security.RateLimit.RPS,
			a.config.Security.RateLimit.Burst,
			a.logger)
		r.Use(limiter.Handler)
	}

	errorHandler := apierrors.NewErrorHandler(a.logger)
	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	dataHandler := transporthttp.NewDataHandler(a.dataService, a.logger, errorHandler)
	healthHandler := transporthttp.NewHealthHandler(a.healthService, a.logger)

	r.Mount("/", dataHandler.Routes())
	r.Mount("/health", healthHandler.Routes())
	r.Method(http.MethodGet, "/metrics", a.metrics.PrometheusHTTP)

	return r
}

// Router exposes the HTTP router, primarily for tests.
func (a *Application) Router() chi.Router {
	return a.router
}

// Run starts the HTTP server and blocks until a shutdown signal arrives or
// the server fails.
func (a *Application) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", slog.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-sigCh:
		a.logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	return a.Shutdown()
}

// Shutdown stops the server and flushes telemetry within the configured
// shutdown timeout.
func (a *Application) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := a.metrics.Shutdown(ctx); err != nil {
		a.logger.Warn("metrics shutdown failed", slog.String("error", err.Error()))
	}

	a.logger.Info("shutdown complete")
	return nil
}

// The wiring must satisfy the transport contracts.
var (
	_ transporthttp.DataService   = (*services.DataService)(nil)
	_ transporthttp.HealthService = (*services.HealthService)(nil)
)
