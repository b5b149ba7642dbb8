package middleware

import (
	"time"

	"github.com/erpsuite/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency per route template. The route
// is the registered pattern (e.g. /api/v1/inventory/products/:id) so ids
// never become label values.
func Metrics(m *telemetry.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.Start()
		c.Next()
		m.Observe(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
