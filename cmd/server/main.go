package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mcoot/dragonword-go/internal/api"
	"github.com/mcoot/dragonword-go/internal/factory"
	redisstorage "github.com/mcoot/dragonword-go/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:        logger,
		StorageType:   os.Getenv("DRAGONWORD_STORAGE"),
		SessionTTL:    durationEnv(logger, "DRAGONWORD_SESSION_TTL"),
		SweepInterval: durationEnv(logger, "DRAGONWORD_SWEEP_INTERVAL"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("DRAGONWORD_REDIS_URL")
		if redisURL == "" {
			logger.Error("DRAGONWORD_REDIS_URL required when DRAGONWORD_STORAGE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		if cfg.SessionTTL > 0 {
			redisCfg.SessionTTL = cfg.SessionTTL
		}
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Load word pairs: a custom list if configured, otherwise the
	// built-in pairs
	if wordsFile := os.Getenv("DRAGONWORD_WORDS_FILE"); wordsFile != "" {
		if err := app.WordService.LoadFromFile(context.Background(), wordsFile); err != nil {
			logger.Error("failed to load word list", slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else if err := app.WordService.Seed(context.Background()); err != nil {
		logger.Error("failed to seed word list", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		Controller:  app.Controller,
		HubManager:  app.HubManager,
		Broadcaster: app.Broadcaster,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("DRAGONWORD_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid DRAGONWORD_PORT", slog.String("value", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Sweep expired sessions in the background
	go app.Sweeper.Run(ctx)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

func durationEnv(logger *slog.Logger, key string) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		logger.Warn("ignoring invalid duration",
			slog.String("key", key),
			slog.String("value", val),
		)
		return 0
	}
	return d
}
