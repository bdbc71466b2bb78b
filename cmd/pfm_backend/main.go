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

	"github.com/SscSPs/pfm_backend/internal/adapters/ai"
	"github.com/SscSPs/pfm_backend/internal/adapters/providers"
	"github.com/SscSPs/pfm_backend/internal/core/services"
	"github.com/SscSPs/pfm_backend/internal/handlers"
	"github.com/SscSPs/pfm_backend/internal/jobs"
	"github.com/SscSPs/pfm_backend/internal/middleware"
	"github.com/SscSPs/pfm_backend/internal/platform/config"
	"github.com/SscSPs/pfm_backend/internal/repositories/database/pgsql"
	"github.com/SscSPs/pfm_backend/internal/utils"
	"github.com/SscSPs/pfm_backend/pkg/database"
	"github.com/getsentry/sentry-go"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 15 * time.Second

// @title PFM Backend API
// @version 1.0
// @description Personal finance backend: multi-currency transactions, budgets, goals, holdings and reports.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.SentryEnvironment,
		}); err != nil {
			logger.Error("Failed to initialize Sentry", slog.String("error", err.Error()))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return err
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, "file://migrations", logger); err != nil {
		return err
	}

	clientOpts := providers.ClientOptions{
		Timeout:  cfg.ProviderTimeout,
		RetryMax: cfg.ProviderRetryMax,
		Logger:   logger,
	}
	serviceContainer := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool), services.Providers{
		Rates: providers.NewFXRatesClient(cfg.FXAPIURL, clientOpts),
		Prices: providers.NewPriceClient(providers.PriceEndpoints{
			FinnhubURL:    cfg.FinnhubAPIURL,
			FinnhubAPIKey: cfg.FinnhubAPIKey,
			CoinGeckoURL:  cfg.CoinGeckoAPIURL,
			MetalsURL:     cfg.MetalsAPIURL,
		}, clientOpts),
		Text: ai.NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel, 2*cfg.ProviderTimeout, cfg.ProviderRetryMax, logger),
	})

	// Reports need a rate table; refuse to serve without one.
	if err := serviceContainer.CurrencyRate.EnsureCurrencyRatesExist(middleware.WithLogger(ctx, logger)); err != nil {
		return err
	}

	scheduler := jobs.NewScheduler(logger, cfg.JobTimeout)
	for _, job := range []jobs.Job{
		jobs.RefreshCurrencyRatesJob(serviceContainer.CurrencyRate, cfg.DefaultBaseCurrency, cfg.RateRefreshSchedule),
		jobs.RefreshHoldingsJob(serviceContainer.Holding, logger, cfg.HoldingRefreshSchedule),
		jobs.DatabaseMaintenanceJob(serviceContainer.Maintenance, logger, cfg.MaintenanceSchedule, cfg.MaintenanceTimeout),
	} {
		if err := scheduler.Register(job); err != nil {
			return err
		}
	}
	scheduler.Start()

	analytics := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer analytics.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, analytics); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", slog.String("error", err.Error()))
	}
	if err := scheduler.Stop(shutdownCtx); err != nil {
		logger.Error("Scheduler did not stop in time", slog.String("error", err.Error()))
	}
	logger.Info("Server stopped")
	return nil
}
