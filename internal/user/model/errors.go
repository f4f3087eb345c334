package model

import (
	"fmt"

	"github.com/festy23/teamwork/pkg/apperror"
)

var (
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("user %w", apperror.ErrNotFound)
	// ErrUsernameTaken indicates that another account already uses the username.
	ErrUsernameTaken = fmt.Errorf("%w", apperror.ErrDuplicateUsername)
	// ErrInvalidLogin indicates an unknown username or a wrong password.
	ErrInvalidLogin = fmt.Errorf("%w: wrong username or password", apperror.ErrInvalidCredentials)
	// ErrInvalidRole indicates a role other than USER or ADMIN.
	ErrInvalidRole = fmt.Errorf("%w: role must be USER or ADMIN", apperror.ErrInvalidInput)
	// ErrCannotDeleteSelf indicates that an administrator tried to delete their own account.
	ErrCannotDeleteSelf = fmt.Errorf("%w: administrators cannot delete their own account", apperror.ErrForbidden)
	// ErrAdminRequired indicates that the acting identity is not an administrator.
	ErrAdminRequired = fmt.Errorf("%w: administrator role required", apperror.ErrForbidden)
)
