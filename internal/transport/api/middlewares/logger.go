package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger writes one entry per request. Private errors attached to the context are logged here
// and never reach the client.
func Logger(l *logrus.Logger) gin.HandlerFunc {
	entry := l.WithFields(logrus.Fields{
		"component": "http",
		"module":    "router",
	})
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"latency":  time.Since(start).String(),
			"clientIP": c.ClientIP(),
		}
		if userID := CurrentUserID(c); userID != 0 {
			fields["userID"] = userID
		}
		reqEntry := entry.WithFields(fields)

		if len(c.Errors) > 0 {
			reqEntry.WithField("errors", c.Errors.String()).Error("request failed")
			return
		}
		if c.Writer.Status() >= 500 { //nolint:mnd
			reqEntry.Error("request failed")
			return
		}
		reqEntry.Info("request")
	}
}
