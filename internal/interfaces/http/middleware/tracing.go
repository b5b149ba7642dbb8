package middleware

import (
	"github.com/erpsuite/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// TracingWithConfig wraps otelgin; spans are named after the route template
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return otelgin.Middleware(cfg.ServiceName)
}

// SpanAttributes tags the active span with the request id and, when it runs
// after JWTAuth, the authenticated tenant and user. otelgin ends the span
// when the chain returns, so the attributes must be set from inside it.
func SpanAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			attrs := make([]attribute.KeyValue, 0, 3)
			for _, key := range []string{logger.GinRequestIDKey, logger.GinTenantIDKey, logger.GinUserIDKey} {
				if v := c.GetString(key); v != "" {
					attrs = append(attrs, attribute.String(key, v))
				}
			}
			span.SetAttributes(attrs...)
		}
		c.Next()
	}
}
