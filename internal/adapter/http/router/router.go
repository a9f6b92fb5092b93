package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Abdulsz/toxic-chat-classifier-api/internal/adapter/http/handler"
	"github.com/Abdulsz/toxic-chat-classifier-api/internal/adapter/http/middleware"
	"github.com/Abdulsz/toxic-chat-classifier-api/internal/usecase"
)

// Setup creates and configures the Gin router
func Setup(uc usecase.ToxicityUsecase, model handler.ModelStatus, redisClient *redis.Client, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Health endpoints
	healthHandler := handler.NewHealthHandler(model, redisClient)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Initialize handlers
	classifyHandler := handler.NewClassifyHandler(uc)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/classify", classifyHandler.Classify)
		v1.POST("/classify/batch", classifyHandler.ClassifyBatch)
	}

	return router
}
