// Package handler provides HTTP handlers for team endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/teamwork/internal/auth"
	teamModel "github.com/festy23/teamwork/internal/team/model"
	"github.com/festy23/teamwork/internal/team/service"
	"github.com/festy23/teamwork/pkg/request"
	"github.com/festy23/teamwork/pkg/response"
)

// Handler handles HTTP requests for team endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new team handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreateTeam handles POST /teams request.
// @Summary Form a team led by the caller
// @Tags Teams
// @Accept json
// @Produce json
// @Param request body teamModel.CreateTeamRequest true "Request"
// @Success 201 {object} teamModel.TeamResponse
// @Failure 400 {object} response.ErrorResponse "INVALID_REQUEST"
// @Failure 401 {object} response.ErrorResponse "UNAUTHORIZED"
// @Router /teams [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) CreateTeam(c *gin.Context) {
	var req teamModel.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	team, err := h.service.CreateTeam(c.Request.Context(), auth.FromContext(c), &req)
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, teamModel.TeamResponse{Team: *team})
}

// ListTeams handles GET /teams request.
// @Summary List all teams
// @Tags Teams
// @Produce json
// @Success 200 {object} teamModel.TeamListResponse
// @Router /teams [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListTeams(c *gin.Context) {
	teams, err := h.service.ListTeams(c.Request.Context())
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, teamModel.TeamListResponse{Teams: teams})
}

// GetTeam handles GET /teams/:team_id request.
// @Summary Get a team with its members
// @Tags Teams
// @Produce json
// @Param team_id path int true "Team ID"
// @Success 200 {object} teamModel.TeamDetails
// @Failure 403 {object} response.ErrorResponse "FORBIDDEN"
// @Failure 404 {object} response.ErrorResponse "NOT_FOUND"
// @Router /teams/{team_id} [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetTeam(c *gin.Context) {
	teamID, err := request.IDParam(c, "team_id")
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	details, err := h.service.GetTeam(c.Request.Context(), auth.FromContext(c), teamID)
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// UpdateTeam handles PUT /teams/:team_id and PUT /admin/teams/:team_id requests.
// @Summary Edit a team; a blank password keeps the current one
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_id path int true "Team ID"
// @Param request body teamModel.UpdateTeamRequest true "Request"
// @Success 200 {object} teamModel.TeamResponse
// @Failure 403 {object} response.ErrorResponse "FORBIDDEN"
// @Failure 404 {object} response.ErrorResponse "NOT_FOUND"
// @Router /teams/{team_id} [put] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) UpdateTeam(c *gin.Context) {
	teamID, err := request.IDParam(c, "team_id")
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	var req teamModel.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	team, err := h.service.UpdateTeam(c.Request.Context(), auth.FromContext(c), teamID, &req)
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, teamModel.TeamResponse{Team: *team})
}

// DissolveTeam handles DELETE /teams/:team_id request.
// @Summary Dissolve a team (leader only)
// @Tags Teams
// @Param team_id path int true "Team ID"
// @Success 204
// @Failure 403 {object} response.ErrorResponse "FORBIDDEN"
// @Failure 404 {object} response.ErrorResponse "NOT_FOUND"
// @Router /teams/{team_id} [delete] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) DissolveTeam(c *gin.Context) {
	teamID, err := request.IDParam(c, "team_id")
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	if err := h.service.DissolveTeam(c.Request.Context(), auth.FromContext(c), teamID); err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// JoinTeam handles POST /teams/:team_id/join request.
// @Summary Join a team with its password
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_id path int true "Team ID"
// @Param request body teamModel.JoinTeamRequest true "Request"
// @Success 200 {object} teamModel.TeamResponse
// @Failure 401 {object} response.ErrorResponse "INVALID_CREDENTIALS"
// @Failure 404 {object} response.ErrorResponse "NOT_FOUND"
// @Failure 409 {object} response.ErrorResponse "ALREADY_MEMBER"
// @Router /teams/{team_id}/join [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) JoinTeam(c *gin.Context) {
	teamID, err := request.IDParam(c, "team_id")
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	var req teamModel.JoinTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	team, err := h.service.JoinTeam(c.Request.Context(), auth.FromContext(c), teamID, req.Password)
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, teamModel.TeamResponse{Team: *team})
}

// LeaveTeam handles POST /teams/:team_id/leave request.
// @Summary Leave a team
// @Tags Teams
// @Param team_id path int true "Team ID"
// @Success 204
// @Failure 403 {object} response.ErrorResponse "FORBIDDEN (leader)"
// @Failure 404 {object} response.ErrorResponse "NOT_FOUND"
// @Router /teams/{team_id}/leave [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) LeaveTeam(c *gin.Context) {
	teamID, err := request.IDParam(c, "team_id")
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	if err := h.service.LeaveTeam(c.Request.Context(), auth.FromContext(c), teamID); err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListMembers handles GET /teams/:team_id/members request.
// @Summary List team members (leader or administrator)
// @Tags Teams
// @Produce json
// @Param team_id path int true "Team ID"
// @Success 200 {object} teamModel.MemberListResponse
// @Failure 403 {object} response.ErrorResponse "FORBIDDEN"
// @Router /teams/{team_id}/members [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListMembers(c *gin.Context) {
	teamID, err := request.IDParam(c, "team_id")
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	members, err := h.service.ListMembers(c.Request.Context(), auth.FromContext(c), teamID)
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, teamModel.MemberListResponse{TeamID: teamID, Members: members})
}

// RemoveMember handles DELETE /teams/:team_id/members/:user_id request.
// @Summary Remove a member (leader only)
// @Tags Teams
// @Param team_id path int true "Team ID"
// @Param user_id path int true "User ID"
// @Success 204
// @Failure 403 {object} response.ErrorResponse "FORBIDDEN"
// @Failure 404 {object} response.ErrorResponse "NOT_FOUND"
// @Router /teams/{team_id}/members/{user_id} [delete] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) RemoveMember(c *gin.Context) {
	teamID, err := request.IDParam(c, "team_id")
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}
	userID, err := request.IDParam(c, "user_id")
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	if err := h.service.RemoveMember(c.Request.Context(), auth.FromContext(c), teamID, userID); err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Dashboard handles GET /me request.
// @Summary The caller's teams with pending work
// @Tags Teams
// @Produce json
// @Success 200 {object} teamModel.DashboardResponse
// @Failure 401 {object} response.ErrorResponse "UNAUTHORIZED"
// @Router /me [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Dashboard(c *gin.Context) {
	dash, err := h.service.Dashboard(c.Request.Context(), auth.FromContext(c))
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dash)
}

// AdminDeleteTeam handles DELETE /admin/teams/:team_id request.
// @Summary Delete any team (administrator)
// @Tags Admin
// @Param team_id path int true "Team ID"
// @Success 204
// @Failure 403 {object} response.ErrorResponse "FORBIDDEN"
// @Failure 404 {object} response.ErrorResponse "NOT_FOUND"
// @Router /admin/teams/{team_id} [delete] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) AdminDeleteTeam(c *gin.Context) {
	teamID, err := request.IDParam(c, "team_id")
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	if err := h.service.AdminDeleteTeam(c.Request.Context(), auth.FromContext(c), teamID); err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CleanupOrphanTeams handles POST /admin/teams/cleanup request.
// @Summary Delete every team without a leader (administrator)
// @Tags Admin
// @Produce json
// @Success 200 {object} teamModel.CleanupResponse
// @Failure 403 {object} response.ErrorResponse "FORBIDDEN"
// @Router /admin/teams/cleanup [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) CleanupOrphanTeams(c *gin.Context) {
	removed, err := h.service.CleanupOrphanTeams(c.Request.Context(), auth.FromContext(c))
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, teamModel.CleanupResponse{Removed: removed})
}
