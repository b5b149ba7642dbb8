package middleware

import (
	"net/http"

	"github.com/erpsuite/backend/internal/infrastructure/logger"
	"github.com/erpsuite/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SwaggerGate answers 404 for the documentation routes when they are disabled
func SwaggerGate(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.AbortWithStatusJSON(http.StatusNotFound, dto.NewErrorResponse(
				dto.ErrCodeNotFound, "API documentation is not available", c.GetString(logger.GinRequestIDKey)))
			return
		}
		c.Next()
	}
}
