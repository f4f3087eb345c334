// Package handler provides HTTP handlers for statistics endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/teamwork/internal/auth"
	"github.com/festy23/teamwork/internal/statistics/service"
	"github.com/festy23/teamwork/pkg/request"
	"github.com/festy23/teamwork/pkg/response"
)

// Handler handles HTTP requests for statistics endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new statistics handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetTeamStatistics handles GET /teams/:team_id/statistics request.
// @Summary Get submission statistics for a team
// @Tags Statistics
// @Produce json
// @Param team_id path int true "Team ID"
// @Success 200 {object} model.TeamStatisticsResponse
// @Failure 403 {object} response.ErrorResponse "FORBIDDEN"
// @Failure 404 {object} response.ErrorResponse "NOT_FOUND"
// @Router /teams/{team_id}/statistics [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetTeamStatistics(c *gin.Context) {
	teamID, err := request.IDParam(c, "team_id")
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	resp, err := h.service.GetTeamStatistics(c.Request.Context(), auth.FromContext(c), teamID)
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetGlobalStatistics handles GET /admin/statistics request.
// @Summary Get application wide statistics
// @Tags Statistics
// @Produce json
// @Success 200 {object} model.GlobalStatisticsResponse
// @Failure 403 {object} response.ErrorResponse "FORBIDDEN"
// @Router /admin/statistics [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetGlobalStatistics(c *gin.Context) {
	resp, err := h.service.GetGlobalStatistics(c.Request.Context(), auth.FromContext(c))
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
