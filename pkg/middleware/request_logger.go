package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"roamio/internal/services"
	"roamio/pkg/logger"
)

// RequestLogger emits one structured log line per request and mirrors it
// into the warehouse app_logs table.
func RequestLogger(analytics services.AnalyticsServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start)
		durationMs := float64(duration.Microseconds()) / 1000

		logger.Log.WithFields(logrus.Fields{
			"trace_id":    c.GetString("trace_id"),
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": durationMs,
			"client_ip":   c.ClientIP(),
		}).Info("request completed")

		if analytics != nil {
			analytics.LogRequest(c.Request.Context(), services.RequestLogRow{
				TraceID:    c.GetString("trace_id"),
				Method:     c.Request.Method,
				Path:       c.Request.URL.Path,
				StatusCode: c.Writer.Status(),
				DurationMs: durationMs,
				ClientIP:   c.ClientIP(),
				OccurredAt: start.UTC(),
			})
		}
	}
}
