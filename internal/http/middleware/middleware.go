// Package middleware holds the shared gin middleware.
package middleware

import (
	"time"

	"realty_leads_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// RequestTimer logs one line per request with method, path, status and
// duration.
func RequestTimer(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
