// Package request parses common pieces of incoming HTTP requests.
package request

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/festy23/teamwork/pkg/apperror"
)

// IDParam parses the positive integer path parameter name.
func IDParam(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", apperror.ErrInvalidInput, name)
	}
	return id, nil
}
