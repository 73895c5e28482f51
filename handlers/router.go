package handlers

import (
	"github.com/AESiR-0/mad-labs-2/logger"
	"github.com/AESiR-0/mad-labs-2/middleware"
	"github.com/AESiR-0/mad-labs-2/monitoring"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the middleware chain and every route.
func NewRouter(app *ApplicationHandler, health *HealthHandler, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(log),
		middleware.SentryMiddleware(),
		middleware.PrometheusMetrics(),
		middleware.ErrorHandler(),
	)

	router.GET("/health", health.Health)
	router.GET("/metrics", gin.WrapH(monitoring.Handler()))

	api := router.Group("/api")
	{
		api.POST("/submit-application", app.SubmitApplication)
	}

	return router
}
