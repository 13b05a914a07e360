package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"talentflow/internal/analytics"
	"talentflow/internal/api/routes"
	"talentflow/internal/config"
	"talentflow/internal/hiring"
	"talentflow/internal/llm"
	"talentflow/internal/logging"
	"talentflow/internal/store"
	"talentflow/internal/store/memory"
	"talentflow/internal/store/postgres"
	"talentflow/pkg/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig(utils.GetStringOrDefault(os.Getenv("CONFIG_PATH"), "configs/config.yaml"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()
	logger := logging.GetGlobalLogger()
	logger.Info("Starting TalentFlow hiring pipeline")

	if cfg.Auth.JWTSecret == "" {
		logger.Fatal("JWT secret is not configured - set JWT_SECRET")
	}

	ctx := context.Background()

	// Initialize storage
	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open store")
	}
	defer st.Close()

	deps := routes.Dependencies{
		Store:  st,
		Logger: logger,
	}

	// Analytics cache is optional
	aggregatorOpts := []analytics.Option{analytics.WithRecentHireWindow(cfg.Analytics.RecentHireWindow)}
	if cfg.Redis.Enabled {
		redisClient := utils.NewRedisClient(cfg)
		defer redisClient.Close()

		if err := redisClient.Ping(ctx); err != nil {
			logger.WithError(err).Warn("Redis is unreachable - analytics will be computed on every request")
		}
		aggregatorOpts = append(aggregatorOpts, analytics.WithCache(redisClient, cfg.Analytics.CacheTTL))
		deps.Cache = redisClient
	}
	deps.Analytics = analytics.NewAggregator(st.Analytics(), logger, aggregatorOpts...)
	deps.Hiring = hiring.NewService(st, logger, hiring.WithChangeNotifier(deps.Analytics))

	// Initialize LLM manager
	if cfg.LLM.Provider != "" && cfg.LLM.Provider != "none" {
		llmManager := llm.NewManager(cfg, logger)
		if err := llmManager.Start(); err != nil {
			logger.WithError(err).Fatal("Failed to start LLM manager")
		}
		deps.LLM = llmManager
	}

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	// Setup routes
	routes.SetupRoutes(e, cfg, deps)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if deps.LLM != nil {
			logger.Info("Stopping LLM manager...")
			if err := deps.LLM.Stop(); err != nil {
				logger.WithError(err).Error("Error stopping LLM manager")
			}
		}

		logger.Info("Stopping HTTP server...")
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("Error shutting down server")
		}
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.WithField("address", address).Info("Server starting")

	if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Fatal("Server failed to start")
	}
	logger.Info("Server shutdown complete")
}

func openStore(ctx context.Context, cfg *config.Config, logger logging.Logger) (store.Store, error) {
	switch cfg.Database.Driver {
	case "memory":
		logger.Warn("Using the in-memory store - data is lost on restart")
		return memory.New(), nil
	case "postgres", "":
		openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		return postgres.Open(openCtx, cfg)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}
