// Package auth resolves who is making a request and what they may do.
package auth

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	userModel "github.com/festy23/teamwork/internal/user/model"
	"github.com/festy23/teamwork/pkg/apperror"
)

const identityKey = "auth.identity"

// ErrSignInRequired is returned when a guest attempts an operation that
// needs an account.
var ErrSignInRequired = fmt.Errorf("%w: sign in required", apperror.ErrUnauthorized)

// Identity is the authenticated principal of a request. The zero value is a
// guest without any permissions.
type Identity struct {
	UserID   int64
	Username string
	Name     string
	Role     userModel.Role
	// TokenID and ExpiresAt describe the access token the identity came from.
	TokenID   string
	ExpiresAt time.Time
}

// FromUser builds an identity for u.
func FromUser(u *userModel.User) Identity {
	return Identity{UserID: u.ID, Username: u.Username, Name: u.Name, Role: u.Role}
}

// IsGuest reports whether no user is authenticated.
func (i Identity) IsGuest() bool {
	return i.UserID == 0
}

// RequireUser returns ErrSignInRequired for a guest.
func (i Identity) RequireUser() error {
	if i.IsGuest() {
		return ErrSignInRequired
	}
	return nil
}

// IsAdmin is the single administrator predicate used across the application.
func (i Identity) IsAdmin() bool {
	return !i.IsGuest() && i.Role == userModel.RoleAdmin
}

// SetIdentity stores id in the gin context.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

// FromContext returns the identity stored in c, or a guest.
func FromContext(c *gin.Context) Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(Identity); ok {
			return id
		}
	}
	return Identity{}
}
