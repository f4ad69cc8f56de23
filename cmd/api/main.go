// Package main is the entry point for the video-discovery-service API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"video-discovery-service/internal/app/service"
	"video-discovery-service/internal/config"
	"video-discovery-service/internal/domain"
	"video-discovery-service/internal/infra/feed"
	"video-discovery-service/internal/infra/postgres"
	"video-discovery-service/internal/infra/postgres/migrations"
	rediscache "video-discovery-service/internal/infra/redis"
	"video-discovery-service/internal/job"
	"video-discovery-service/internal/logger"
	"video-discovery-service/internal/transport/httpserver"
	"video-discovery-service/internal/validator"
	"video-discovery-service/pkg/locker"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(
		logger.Config{
			Level:  cfg.Logger.Level,
			Format: cfg.Logger.Format,
			Output: cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting video-discovery-service",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	// Connect to database
	db, err := postgres.NewConnection(
		postgres.Config{
			Host:         cfg.Database.Host,
			Port:         cfg.Database.Port,
			Name:         cfg.Database.Name,
			User:         cfg.Database.User,
			Password:     cfg.Database.Password,
			SSLMode:      cfg.Database.SSLMode,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
			MaxLifetime:  cfg.Database.MaxLifetime,
		},
		log.Logger,
	)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = postgres.Close(db) }()

	// Run migrations
	if err := migrations.Run(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	log.Info("database migrations completed")

	// Create repository
	repo := postgres.NewRepository(db)

	// Create catalog feed clients
	sources := make([]domain.CatalogSource, 0, len(cfg.Feeds))
	for _, fc := range cfg.Feeds {
		sources = append(sources, feed.New(
			feed.ClientConfig{
				Name:    fc.Name,
				BaseURL: fc.BaseURL,
				Timeout: fc.Timeout,
				Retry: feed.RetryConfig{
					MaxAttempts: fc.Retry.MaxAttempts,
					WaitTime:    fc.Retry.WaitTime,
					MaxWaitTime: fc.Retry.MaxWaitTime,
				},
				CB: feed.CBConfig{
					MaxRequests:  fc.CB.MaxRequests,
					Interval:     fc.CB.Interval,
					Timeout:      fc.CB.Timeout,
					FailureRatio: fc.CB.FailureRatio,
				},
			},
			log.Logger,
		))
	}

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()
	log.Info("connected to Redis",
		zap.String("host", cfg.Redis.Host),
		zap.Int("port", cfg.Redis.Port),
	)

	// Create cache implementation (optional, based on config)
	var cache domain.Cache
	if cfg.Cache.Enabled {
		cache = rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix)
		log.Info("cache enabled",
			zap.Duration("trending_ttl", cfg.Trending.TTL),
			zap.String("key_prefix", cfg.Cache.KeyPrefix),
		)
	} else {
		log.Info("cache disabled")
	}

	// Create services
	discoverySvc := service.NewDiscoveryService(repo, cache, service.DiscoveryConfig{
		TrendingWindow: cfg.Trending.Window,
		TrendingTTL:    cfg.Trending.TTL,
	}, log.Logger)
	ingestSvc := service.NewIngestService(repo, sources, log.Logger)

	// Create distributed locker
	distLocker := locker.NewRedisLocker(redisClient, log.Logger)

	// Create validator
	v := validator.New()

	// Create HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Port:      cfg.App.Port,
			BodyLimit: 1024 * 1024, // 1MB
			Debug:     cfg.App.Debug,
		},
		discoverySvc,
		ingestSvc,
		db,
		v,
		log.Logger,
	)

	// Start ingest scheduler with distributed locking
	scheduler := job.NewIngestScheduler(
		ingestSvc,
		job.IngestConfig{
			Interval:  cfg.Ingest.Interval,
			Timeout:   cfg.Ingest.Timeout,
			OnStartup: cfg.Ingest.OnStartup,
		},
		log.Logger,
		distLocker,
	)
	scheduler.Start(cfg.Ingest.OnStartup)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		scheduler.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	// Start server
	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
