package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// ModelStatus reports whether a usable model handle is held
type ModelStatus interface {
	Loaded() bool
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	model ModelStatus
	redis *redis.Client
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(model ModelStatus, redis *redis.Client) *HealthHandler {
	return &HealthHandler{
		model: model,
		redis: redis,
	}
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status      string            `json:"status"`
	ModelLoaded bool              `json:"model_loaded"`
	Components  map[string]string `json:"components"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	components := make(map[string]string)
	healthy := true

	// Model loads lazily on the first classification, so "not loaded"
	// is a normal cold-start condition, not a failure.
	modelLoaded := false
	if h.model != nil {
		modelLoaded = h.model.Loaded()
		if modelLoaded {
			components["model"] = "loaded"
		} else {
			components["model"] = "not loaded"
		}
	} else {
		components["model"] = "not configured"
	}

	// Check Redis
	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			components["redis"] = "error: " + err.Error()
			healthy = false
		} else {
			components["redis"] = "ok"
		}
	} else {
		components["redis"] = "not configured"
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if !healthy {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, HealthStatus{
		Status:      status,
		ModelLoaded: modelLoaded,
		Components:  components,
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	// The service can accept traffic before the model is provisioned;
	// the first request pays the cold-start cost.
	modelLoaded := false
	if h.model != nil {
		modelLoaded = h.model.Loaded()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "ready",
		"model_loaded": modelLoaded,
	})
}
