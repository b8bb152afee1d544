package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/sportsdesk/internal/api"
	"github.com/jstittsworth/sportsdesk/internal/api/middleware"
	"github.com/jstittsworth/sportsdesk/internal/gamification"
	"github.com/jstittsworth/sportsdesk/internal/services"
	"github.com/jstittsworth/sportsdesk/internal/sources"
	"github.com/jstittsworth/sportsdesk/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	logger := logrus.StandardLogger()
	if cfg.IsDevelopment() {
		logger.SetLevel(logrus.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		logger.SetLevel(logrus.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to Redis. The cache is an optimization, not a dependency: the
	// server still serves every tool without it.
	var (
		cache        sources.CacheProvider
		cacheService *services.CacheService
	)
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Warnf("Invalid Redis URL, running without cache: %v", err)
	} else {
		redisClient := redis.NewClient(opt)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("Redis unreachable, running without cache: %v", err)
			redisClient.Close()
		} else {
			cacheService = services.NewCacheService(redisClient)
			cache = cacheService
			defer redisClient.Close()
		}
	}

	// Assemble the fallback chains and the services on top of them
	chains, err := services.NewChainSet(cfg, cache, logger)
	if err != nil {
		logger.Fatalf("Failed to build source chains: %v", err)
	}
	aggregator := services.NewAggregator(chains, cacheService, logger)
	pipeline := services.NewPipeline(chains, logger)
	profiles := services.NewProfileService(chains.Mistral(), logger)
	ledger := gamification.NewLedger()

	// Background cache warming
	if cfg.EnableBackgroundJobs {
		interval, err := time.ParseDuration(cfg.RefreshInterval)
		if err != nil {
			logger.Warnf("Invalid refresh interval, using default 2h: %v", err)
			interval = 2 * time.Hour
		}
		refresher := services.NewRefresher(chains, cacheService, cfg.WarmTeams, interval, logger)
		if err := refresher.Start(); err != nil {
			logger.Errorf("Failed to start refresher: %v", err)
		}
		defer refresher.Stop()
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.CorsOrigins))

	api.SetupRoutes(router, cfg, chains, aggregator, pipeline, profiles, ledger, logger)

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
