package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"cinetrip-backend/pkg/metrics"
)

// HTTPMetrics records duration and count per route template.
// Unmatched routes share one label to keep cardinality bounded.
func HTTPMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		switch path {
		case "":
			path = "unmatched"
		case "/health", "/metrics":
			return
		}

		m.ObserveHTTPRequest(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}
