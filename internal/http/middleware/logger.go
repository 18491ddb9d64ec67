package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"igreja_backend/internal/logger"
)

// Logger emits one structured line per request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		event := logger.FromGin(c).Info()
		if c.Writer.Status() >= 500 {
			event = logger.FromGin(c).Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Msg("http request")
	}
}
