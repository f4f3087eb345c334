package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/teamwork/pkg/response"
)

// Recovery turns a panic into a 500 INTERNAL_ERROR response.
func Recovery(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Errorw("panic recovered",
					"error", err,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"request_id", RequestIDFrom(c),
					"stack", string(debug.Stack()),
				)
				response.Error(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
			}
		}()

		c.Next()
	}
}
