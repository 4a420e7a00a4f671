package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quietghost-dev/contact-api/internal/logging"
	"github.com/quietghost-dev/contact-api/internal/utils"
)

// RequestLogger logs one line per request with status, latency and client IP.
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		clientIP := utils.GetClientIP(c)

		logger.Printf("[HTTP] %s | %13v | %15s | %s %s",
			logger.FormatHTTPStatus(status),
			latency,
			clientIP,
			method,
			path,
		)
	}
}
