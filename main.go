package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/FeedbackLens/feedback-lens-backend/config"
	"github.com/FeedbackLens/feedback-lens-backend/db"
	"github.com/FeedbackLens/feedback-lens-backend/handlers"
	"github.com/FeedbackLens/feedback-lens-backend/internal/analysis"
	"github.com/FeedbackLens/feedback-lens-backend/logger"
	"github.com/FeedbackLens/feedback-lens-backend/internal/store/postgres"
	"github.com/FeedbackLens/feedback-lens-backend/router"
	"github.com/FeedbackLens/feedback-lens-backend/services"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer func() { _ = logger.Close() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database connection and migrations
	pool, err := db.Connect(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Analysis cache: in-process by default, Redis when configured
	var redisClient *redis.Client
	var cache analysis.Cache
	if cfg.Analysis.CacheBackend == "redis" {
		redisOptions := &redis.Options{
			Addr:         cfg.Redis.Address,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}
		if cfg.Redis.UseTLS {
			redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient = redis.NewClient(redisOptions)
		defer func() { _ = redisClient.Close() }()
		cache = analysis.NewRedisCache(redisClient)
	} else {
		cache = analysis.NewMemoryCache()
	}

	// Analysis providers: online only when an API key is configured
	var online analysis.Provider
	if cfg.Analysis.OpenAIAPIKey != "" {
		online = analysis.NewOpenAIProvider(
			cfg.Analysis.OpenAIAPIKey,
			cfg.Analysis.Model,
			time.Duration(cfg.Analysis.TimeoutSeconds)*time.Second,
		)
		log.Infow("Remote analysis provider enabled", "model", cfg.Analysis.Model)
	} else {
		log.Info("No OpenAI API key configured, running analysis offline")
	}
	analysisService := analysis.NewService(cache, online)

	// Stores and handlers
	feedbackStore := postgres.NewFeedbackStore(pool)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackStore, analysisService)

	// A typed nil *redis.Client must not leak into the interface field.
	var healthRedis redis.UniversalClient
	if redisClient != nil {
		healthRedis = redisClient
	}
	healthService := services.NewHealthService(pool, healthRedis, analysisService, cfg.Server.Version)
	healthHandler := handlers.NewHealthHandler(healthService)

	r := router.SetupRouter(router.Dependencies{
		Config:          cfg,
		FeedbackHandler: feedbackHandler,
		HealthHandler:   healthHandler,
		Logger:          log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Server shutdown failed", "error", err)
	}
	log.Info("Server stopped")
}
