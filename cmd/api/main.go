package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Abdulsz/toxic-chat-classifier-api/internal/adapter/http/router"
	"github.com/Abdulsz/toxic-chat-classifier-api/internal/adapter/model"
	"github.com/Abdulsz/toxic-chat-classifier-api/internal/adapter/storage"
	"github.com/Abdulsz/toxic-chat-classifier-api/internal/infrastructure/cache"
	"github.com/Abdulsz/toxic-chat-classifier-api/internal/infrastructure/config"
	"github.com/Abdulsz/toxic-chat-classifier-api/internal/infrastructure/logger"
	"github.com/Abdulsz/toxic-chat-classifier-api/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Initialize object store
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		log.Error("Failed to load AWS config", zap.Error(err))
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	store := storage.NewS3Store(s3.NewFromConfig(awsCfg), cfg.AWS.Bucket, cfg.Model.Prefix)
	loader := model.NewHugotLoader(log)
	provisioner := usecase.NewProvisioner(store, loader, cfg.Model.CacheDir, log)

	// Initialize Redis (optional, continue without it)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn("Failed to connect to Redis, continuing without cache", zap.Error(err))
			redisClient = nil
		} else {
			log.Info("Connected to Redis")
		}
	}

	results := cache.NewResultCache(redisClient, time.Hour)
	uc := usecase.NewToxicityUsecase(provisioner, results, log)

	// Setup router
	r := router.Setup(uc, provisioner, redisClient, log)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("Starting server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close Redis connection
	if redisClient != nil {
		_ = redisClient.Close()
	}

	log.Info("Server exited")
	return nil
}
