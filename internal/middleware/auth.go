package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/teamwork/internal/auth"
	userModel "github.com/festy23/teamwork/internal/user/model"
	"github.com/festy23/teamwork/pkg/response"
)

// UserLookup loads the account a token was issued for.
type UserLookup func(ctx context.Context, userID int64) (*userModel.User, error)

// Authenticate resolves the bearer token into an auth.Identity. Requests
// without an Authorization header continue as guests; a malformed, expired,
// revoked or orphaned token is answered with 401.
func Authenticate(tokens *auth.TokenManager, revoker auth.Revoker, lookup UserLookup, logger *zap.SugaredLogger) gin.HandlerFunc {
	if revoker == nil {
		revoker = auth.NopRevoker{}
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		scheme, raw, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
			response.FromError(c, logger, auth.ErrInvalidToken)
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			response.FromError(c, logger, err)
			return
		}

		revoked, err := revoker.IsRevoked(c.Request.Context(), claims.TokenID)
		if err != nil {
			response.FromError(c, logger, err)
			return
		}
		if revoked {
			response.FromError(c, logger, auth.ErrInvalidToken)
			return
		}

		user, err := lookup(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, userModel.ErrUserNotFound) {
				response.FromError(c, logger, auth.ErrInvalidToken)
				return
			}
			response.FromError(c, logger, err)
			return
		}

		identity := auth.FromUser(user)
		identity.TokenID = claims.TokenID
		identity.ExpiresAt = claims.ExpiresAt
		auth.SetIdentity(c, identity)
		c.Next()
	}
}

// RequireAuth answers 401 for guests.
func RequireAuth(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.FromContext(c).RequireUser(); err != nil {
			response.FromError(c, logger, err)
			return
		}
		c.Next()
	}
}

// RequireAdmin answers 403 unless the identity is an administrator.
func RequireAdmin(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := auth.FromContext(c)
		if err := identity.RequireUser(); err != nil {
			response.FromError(c, logger, err)
			return
		}
		if !identity.IsAdmin() {
			response.FromError(c, logger, userModel.ErrAdminRequired)
			return
		}
		c.Next()
	}
}
