// Package handler provides HTTP handlers for assignment endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/teamwork/internal/assignment/model"
	"github.com/festy23/teamwork/internal/assignment/service"
	"github.com/festy23/teamwork/internal/auth"
	"github.com/festy23/teamwork/pkg/request"
	"github.com/festy23/teamwork/pkg/response"
)

// Handler handles HTTP requests for assignment endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new assignment handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreateAssignment handles POST /teams/:team_id/assignments request.
// @Summary Post an assignment (leader only)
// @Tags Assignments
// @Accept json
// @Produce json
// @Param team_id path int true "Team ID"
// @Param request body model.CreateAssignmentRequest true "Request"
// @Success 201 {object} model.AssignmentResponse
// @Failure 400 {object} response.ErrorResponse "INVALID_REQUEST"
// @Failure 403 {object} response.ErrorResponse "FORBIDDEN"
// @Router /teams/{team_id}/assignments [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) CreateAssignment(c *gin.Context) {
	teamID, err := request.IDParam(c, "team_id")
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	var req model.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	assignment, err := h.service.CreateAssignment(c.Request.Context(), auth.FromContext(c), teamID, &req)
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, model.AssignmentResponse{Assignment: *assignment})
}

// ListAssignments handles GET /teams/:team_id/assignments request.
// @Summary List a team's assignments, open ones first
// @Tags Assignments
// @Produce json
// @Param team_id path int true "Team ID"
// @Success 200 {object} model.AssignmentListResponse
// @Failure 403 {object} response.ErrorResponse "FORBIDDEN"
// @Failure 404 {object} response.ErrorResponse "NOT_FOUND"
// @Router /teams/{team_id}/assignments [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListAssignments(c *gin.Context) {
	teamID, err := request.IDParam(c, "team_id")
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	views, err := h.service.ListAssignmentsForTeam(c.Request.Context(), auth.FromContext(c), teamID)
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, model.AssignmentListResponse{TeamID: teamID, Assignments: views})
}

// DeleteAssignment handles DELETE /teams/:team_id/assignments/:assignment_id request.
// @Summary Delete an assignment and its submissions (leader only)
// @Tags Assignments
// @Param team_id path int true "Team ID"
// @Param assignment_id path int true "Assignment ID"
// @Success 204
// @Failure 400 {object} response.ErrorResponse "MISMATCH"
// @Failure 403 {object} response.ErrorResponse "FORBIDDEN"
// @Failure 404 {object} response.ErrorResponse "NOT_FOUND"
// @Router /teams/{team_id}/assignments/{assignment_id} [delete] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) DeleteAssignment(c *gin.Context) {
	teamID, err := request.IDParam(c, "team_id")
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}
	assignmentID, err := request.IDParam(c, "assignment_id")
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	if err := h.service.DeleteAssignment(c.Request.Context(), auth.FromContext(c), teamID, assignmentID); err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
