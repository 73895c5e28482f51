package middleware

import (
	"strconv"
	"time"

	"github.com/AESiR-0/mad-labs-2/monitoring"
	"github.com/gin-gonic/gin"
)

// PrometheusMetrics records request counts, latency and in-flight requests.
// Unrouted paths share the "unmatched" label.
func PrometheusMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		monitoring.RequestsInFlight.Inc()
		start := time.Now()
		defer func() {
			monitoring.RequestsInFlight.Dec()
			monitoring.RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
			monitoring.RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
		}()

		c.Next()
	}
}
