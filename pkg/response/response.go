// Package response provides the JSON envelopes shared by all HTTP handlers.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/teamwork/pkg/apperror"
)

// ErrorResponse represents error response structure.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries a machine readable code and a human readable message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error writes an error response and aborts the handler chain.
func Error(c *gin.Context, code string, message string, statusCode int) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// BadRequest writes a 400 INVALID_REQUEST response.
func BadRequest(c *gin.Context, message string) {
	Error(c, "INVALID_REQUEST", message, http.StatusBadRequest)
}

// FromError translates a service error into an HTTP response. Errors that do
// not wrap a known kind are logged and reported as 500.
func FromError(c *gin.Context, logger *zap.SugaredLogger, err error) {
	if kind, ok := apperror.Classify(err); ok {
		Error(c, kind.Code, err.Error(), kind.Status)
		return
	}
	logger.Errorw("unexpected error",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
	Error(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
}
