package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/vulnbank/vulnbank/internal/adapter/http"
	"github.com/vulnbank/vulnbank/internal/adapter/http/handler"
	"github.com/vulnbank/vulnbank/internal/adapter/http/middleware"
	postgresRepo "github.com/vulnbank/vulnbank/internal/adapter/repository/postgres"
	redisRepo "github.com/vulnbank/vulnbank/internal/adapter/repository/redis"
	"github.com/vulnbank/vulnbank/internal/infrastructure/config"
	"github.com/vulnbank/vulnbank/internal/infrastructure/logger"
	"github.com/vulnbank/vulnbank/internal/infrastructure/metrics"
	"github.com/vulnbank/vulnbank/internal/infrastructure/postgres"
	"github.com/vulnbank/vulnbank/internal/infrastructure/redis"
	"github.com/vulnbank/vulnbank/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	defaultFeeRate, err := decimal.NewFromString(cfg.DefaultFeeRate)
	if err != nil {
		log.Fatal().Err(err).Str("rate", cfg.DefaultFeeRate).Msg("invalid default fee rate")
	}

	ctx := context.Background()

	// Apply schema migrations
	if cfg.MigrationsPath != "" {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	directory := postgresRepo.NewDirectoryRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	activityRepo := postgresRepo.NewActivityRepository(pool)
	balanceRepo := postgresRepo.NewBalanceRepository(pool)
	retrier := postgresRepo.NewRetrier()
	pendingStore := redisRepo.NewPendingTransferStore(redisClient)
	sessionStore := redisRepo.NewSessionStore(redisClient, cfg.SessionTTL)

	// Initialize use cases
	engine := usecase.NewLedgerEngine(txManager, directory, ledgerRepo, activityRepo, balanceRepo)
	workflow := usecase.NewTransferWorkflow(pendingStore, engine, retrier)
	accountUC := usecase.NewAccountUseCase(directory, activityRepo, ledgerRepo)

	m := metrics.New()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(accountUC, sessionStore, m)
	accountHandler := handler.NewAccountHandler(accountUC)
	transferHandler := handler.NewTransferHandler(workflow, accountUC, m, defaultFeeRate)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:       authHandler,
		AccountHandler:    accountHandler,
		TransferHandler:   transferHandler,
		HealthHandler:     healthHandler,
		SessionMiddleware: middleware.NewSessionMiddleware(sessionStore, cfg.SessionCookie, m),
		LoggingMiddleware: middleware.NewLoggingMiddleware(appLogger),
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
