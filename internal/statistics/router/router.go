// Package router provides statistics module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/teamwork/internal/statistics/handler"
	"github.com/festy23/teamwork/internal/statistics/repository"
	"github.com/festy23/teamwork/internal/statistics/service"
	teamRepository "github.com/festy23/teamwork/internal/team/repository"
)

// RegisterRoutes registers statistics module routes.
func RegisterRoutes(api, admin *gin.RouterGroup, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, teamRepository.New(db, logger), logger)
	h := handler.New(svc, logger)

	api.GET("/teams/:team_id/statistics", h.GetTeamStatistics)
	admin.GET("/statistics", h.GetGlobalStatistics)
}
