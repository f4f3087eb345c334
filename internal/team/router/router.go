// Package router provides team module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	assignmentRepository "github.com/festy23/teamwork/internal/assignment/repository"
	"github.com/festy23/teamwork/internal/auth"
	"github.com/festy23/teamwork/internal/metrics"
	submissionRepository "github.com/festy23/teamwork/internal/submission/repository"
	submissionService "github.com/festy23/teamwork/internal/submission/service"
	"github.com/festy23/teamwork/internal/team/handler"
	"github.com/festy23/teamwork/internal/team/repository"
	"github.com/festy23/teamwork/internal/team/service"
	userRepository "github.com/festy23/teamwork/internal/user/repository"
)

// RegisterRoutes registers team module routes. api must already require an
// authenticated identity and admin an administrator.
func RegisterRoutes(api, admin *gin.RouterGroup, db *gorm.DB, logger *zap.SugaredLogger, hasher auth.PasswordHasher, m *metrics.Metrics) {
	repo := repository.New(db, logger)
	assignments := assignmentRepository.New(db, logger)
	attention := submissionService.New(submissionRepository.New(db, logger), assignments, repo, db, logger, m, 0)

	svc := service.New(service.Deps{
		Repo:        repo,
		Users:       userRepository.New(db, logger),
		Assignments: assignments,
		Attention:   attention,
		Hasher:      hasher,
		DB:          db,
		Logger:      logger,
		Metrics:     m,
	})
	h := handler.New(svc, logger)

	api.GET("/me", h.Dashboard)
	api.GET("/teams", h.ListTeams)
	api.POST("/teams", h.CreateTeam)
	api.GET("/teams/:team_id", h.GetTeam)
	api.PUT("/teams/:team_id", h.UpdateTeam)
	api.DELETE("/teams/:team_id", h.DissolveTeam)
	api.POST("/teams/:team_id/join", h.JoinTeam)
	api.POST("/teams/:team_id/leave", h.LeaveTeam)
	api.GET("/teams/:team_id/members", h.ListMembers)
	api.DELETE("/teams/:team_id/members/:user_id", h.RemoveMember)

	admin.GET("/teams", h.ListTeams)
	admin.PUT("/teams/:team_id", h.UpdateTeam)
	admin.DELETE("/teams/:team_id", h.AdminDeleteTeam)
	admin.POST("/teams/cleanup", h.CleanupOrphanTeams)
}
