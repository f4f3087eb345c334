// Package router provides user module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/teamwork/internal/auth"
	"github.com/festy23/teamwork/internal/user/handler"
	"github.com/festy23/teamwork/internal/user/repository"
	"github.com/festy23/teamwork/internal/user/service"
)

// RegisterRoutes registers user module routes. public accepts guests, api
// requires an identity and admin an administrator.
func RegisterRoutes(
	public, api, admin *gin.RouterGroup,
	db *gorm.DB,
	logger *zap.SugaredLogger,
	hasher auth.PasswordHasher,
	tokens *auth.TokenManager,
	revoker auth.Revoker,
) {
	svc := service.New(repository.New(db, logger), db, hasher, tokens, revoker, logger)
	h := handler.New(svc, logger)

	public.POST("/auth/register", h.Register)
	public.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)

	admin.GET("/users", h.ListUsers)
	admin.PUT("/users/:user_id", h.UpdateUser)
	admin.DELETE("/users/:user_id", h.DeleteUser)
}
