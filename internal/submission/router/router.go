// Package router provides submission module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	assignmentRepository "github.com/festy23/teamwork/internal/assignment/repository"
	"github.com/festy23/teamwork/internal/metrics"
	"github.com/festy23/teamwork/internal/submission/handler"
	"github.com/festy23/teamwork/internal/submission/repository"
	"github.com/festy23/teamwork/internal/submission/service"
	teamRepository "github.com/festy23/teamwork/internal/team/repository"
)

// RegisterRoutes registers submission module routes on an authenticated group.
func RegisterRoutes(api *gin.RouterGroup, db *gorm.DB, logger *zap.SugaredLogger, m *metrics.Metrics, maxBytes int64) {
	svc := service.New(
		repository.New(db, logger),
		assignmentRepository.New(db, logger),
		teamRepository.New(db, logger),
		db,
		logger,
		m,
		maxBytes,
	)
	h := handler.New(svc, logger, maxBytes)

	api.POST("/assignments/:assignment_id/submission", h.Submit)
	api.GET("/assignments/:assignment_id/submission", h.GetMine)
	api.GET("/submissions/:submission_id/download", h.Download)
	api.GET("/teams/:team_id/assignments/:assignment_id/submissions", h.ListForAssignment)
	api.GET("/teams/:team_id/submissions", h.ListForTeam)
}
