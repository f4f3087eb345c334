package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/festy23/teamwork/internal/metrics"
)

// Metrics records request counts and latency by route template, so path
// parameters do not explode label cardinality. A nil m disables recording.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		m.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
