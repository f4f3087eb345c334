// Package router provides assignment module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/teamwork/internal/assignment/handler"
	"github.com/festy23/teamwork/internal/assignment/repository"
	"github.com/festy23/teamwork/internal/assignment/service"
	submissionRepository "github.com/festy23/teamwork/internal/submission/repository"
	teamRepository "github.com/festy23/teamwork/internal/team/repository"
)

// RegisterRoutes registers assignment module routes on an authenticated group.
func RegisterRoutes(api *gin.RouterGroup, db *gorm.DB, logger *zap.SugaredLogger) {
	svc := service.New(
		repository.New(db, logger),
		teamRepository.New(db, logger),
		submissionRepository.New(db, logger),
		db,
		logger,
	)
	h := handler.New(svc, logger)

	api.GET("/teams/:team_id/assignments", h.ListAssignments)
	api.POST("/teams/:team_id/assignments", h.CreateAssignment)
	api.DELETE("/teams/:team_id/assignments/:assignment_id", h.DeleteAssignment)
}
