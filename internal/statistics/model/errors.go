package model

import (
	"fmt"

	"github.com/festy23/teamwork/pkg/apperror"
)

var (
	// ErrLeaderOrAdmin indicates that team statistics are restricted to the
	// leader and administrators.
	ErrLeaderOrAdmin = fmt.Errorf("%w: only the team leader or an administrator may view statistics", apperror.ErrForbidden)
	// ErrAdminRequired indicates that the acting identity is not an administrator.
	ErrAdminRequired = fmt.Errorf("%w: administrator role required", apperror.ErrForbidden)
)
