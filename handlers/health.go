package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/AESiR-0/mad-labs-2/utils"
	"github.com/gin-gonic/gin"
)

// HealthHandler probes optional dependencies. A nil Redis client is
// reported as disabled rather than unavailable.
type HealthHandler struct {
	redis utils.RedisClient
}

func NewHealthHandler(redis utils.RedisClient) *HealthHandler {
	return &HealthHandler{redis: redis}
}

func (h *HealthHandler) Health(c *gin.Context) {
	if h.redis == nil {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"details": gin.H{"redis": "disabled"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.redis.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "degraded",
			"details": gin.H{"redis": "unavailable"},
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"details": gin.H{"redis": "available"},
	})
}
