package middleware

import (
	log "log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// AuditMiddleware 记录请求概要。计数接口流量大，不落请求体
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()

		log.InfoContext(c.Request.Context(), "Recv Request",
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.Int("status", c.Writer.Status()),
			log.Duration("latency", time.Since(startTime)),
		)
	}
}
