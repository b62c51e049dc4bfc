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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/SscSPs/simbank_ledger/internal/adapters/audit"
	"github.com/SscSPs/simbank_ledger/internal/adapters/database/memory"
	"github.com/SscSPs/simbank_ledger/internal/adapters/database/pgsql"
	"github.com/SscSPs/simbank_ledger/internal/adapters/pricing"
	portsrepo "github.com/SscSPs/simbank_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/simbank_ledger/internal/core/ports/services"
	"github.com/SscSPs/simbank_ledger/internal/core/services"
	"github.com/SscSPs/simbank_ledger/internal/handlers"
	"github.com/SscSPs/simbank_ledger/internal/middleware"
	"github.com/SscSPs/simbank_ledger/internal/platform/config"
	"github.com/SscSPs/simbank_ledger/internal/utils"
	"github.com/SscSPs/simbank_ledger/pkg/database"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logger.Warn("Unknown LOG_LEVEL, keeping info", slog.String("log_level", cfg.LogLevel))
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open ledger store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	oracle, err := pricing.New(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize price oracle", slog.String("error", err.Error()))
		os.Exit(1)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	sinks := []portssvc.AuditSink{audit.NewLogSink()}
	if posthogSink := audit.NewPosthogSink(posthogClient); posthogSink.Enabled() {
		sinks = append(sinks, posthogSink)
	}
	dispatcher := audit.NewDispatcher(cfg.AuditBufferSize, logger, sinks...)

	serviceContainer := services.NewServiceContainer(cfg, services.Dependencies{
		Store:  store,
		Oracle: oracle,
		Sink:   dispatcher,
	})

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT", slog.String("rate_limit", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	rateLimiter := limiter.New(limitermemory.NewStore(), rate)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AddAllowHeaders("Authorization")
	r.Use(cors.New(corsConfig))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer,
		middleware.RateLimit(rateLimiter),
		middleware.PosthogMiddleware(posthogClient),
	)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreDriver))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", slog.String("error", err.Error()))
	}
	// Drain pending audit records once no request can emit new ones.
	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Error("Audit dispatcher did not drain", slog.String("error", err.Error()), slog.Int64("dropped", dispatcher.Dropped()))
	}
}

// openStore builds the configured ledger store. For PostgreSQL it also applies pending migrations.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.UnitOfWork, func(), error) {
	if cfg.StoreDriver == config.StoreMemory {
		logger.Warn("Using the in-memory ledger store; data is lost on exit")
		return memory.New(), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if _, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		database.ClosePgxPool(dbPool, logger)
		return nil, nil, err
	}

	return pgsql.NewStore(dbPool), func() { database.ClosePgxPool(dbPool, logger) }, nil
}
