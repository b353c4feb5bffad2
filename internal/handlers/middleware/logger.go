package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/ladino-web/internal/domain/ports"
	"github.com/rafabene/ladino-web/internal/infrastructure/metrics"
)

// RequestLogger registra cada requisição no logger estruturado e nas métricas
func RequestLogger(logger ports.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		elapsed := time.Since(start)
		status := c.Writer.Status()

		if m != nil {
			m.ObserveRequest(c.Request.Method, c.FullPath(), status, elapsed)
		}

		reqLog := logger.With("method", c.Request.Method, "path", c.Request.URL.Path, "ip", c.ClientIP())
		args := []any{"status", status, "duration_ms", elapsed.Milliseconds()}
		if len(c.Errors) > 0 {
			args = append(args, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			reqLog.Error("request", args...)
		case status >= 400:
			reqLog.Warn("request", args...)
		default:
			reqLog.Info("request", args...)
		}
	}
}
