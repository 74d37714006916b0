package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/prometheus"
)

// Metrics instruments every request with count, duration, and in-flight
// gauges.  The path label uses the route template, not the raw URL, so
// cardinality stays bounded.
func Metrics(m *prometheus.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		m.HTTPActiveRequests.WithLabelValues(method).Inc()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPActiveRequests.WithLabelValues(method).Dec()
		m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
