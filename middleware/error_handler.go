package middleware

import (
	"github.com/AESiR-0/mad-labs-2/utils"
	"github.com/gin-gonic/gin"
)

// ErrorHandler reports errors attached by handlers to Sentry.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, ginErr := range c.Errors {
			utils.CaptureError(ginErr.Err, map[string]interface{}{
				"endpoint": c.Request.URL.Path,
				"method":   c.Request.Method,
				"status":   c.Writer.Status(),
			})
		}
	}
}
