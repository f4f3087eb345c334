// Package handler provides HTTP handlers for user endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/teamwork/internal/auth"
	"github.com/festy23/teamwork/internal/user/model"
	"github.com/festy23/teamwork/internal/user/service"
	"github.com/festy23/teamwork/pkg/request"
	"github.com/festy23/teamwork/pkg/response"
)

// Handler handles HTTP requests for user endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new user handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register handles POST /auth/register request.
// @Summary Create an account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Request"
// @Success 201 {object} model.UserResponse
// @Failure 400 {object} response.ErrorResponse "INVALID_REQUEST"
// @Failure 409 {object} response.ErrorResponse "DUPLICATE_USERNAME"
// @Router /auth/register [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, model.UserResponse{User: *user})
}

// Login handles POST /auth/login request.
// @Summary Exchange credentials for an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Request"
// @Success 200 {object} model.LoginResponse
// @Failure 401 {object} response.ErrorResponse "INVALID_CREDENTIALS"
// @Router /auth/login [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout handles POST /auth/logout request.
// @Summary Revoke the current access token
// @Tags Auth
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} response.ErrorResponse "UNAUTHORIZED"
// @Router /auth/logout [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), auth.FromContext(c)); err != nil {
		response.FromError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListUsers handles GET /admin/users request.
// @Summary List every account (admin only)
// @Tags Admin
// @Produce json
// @Success 200 {object} model.UserListResponse
// @Failure 403 {object} response.ErrorResponse "FORBIDDEN"
// @Router /admin/users [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.AdminListUsers(c.Request.Context(), auth.FromContext(c))
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}
	if users == nil {
		users = []model.User{}
	}

	c.JSON(http.StatusOK, model.UserListResponse{Users: users})
}

// UpdateUser handles PUT /admin/users/:user_id request.
// @Summary Edit an account (admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param request body model.AdminUpdateUserRequest true "Request"
// @Success 200 {object} model.UserResponse
// @Failure 403 {object} response.ErrorResponse "FORBIDDEN"
// @Failure 404 {object} response.ErrorResponse "NOT_FOUND"
// @Failure 409 {object} response.ErrorResponse "DUPLICATE_USERNAME"
// @Router /admin/users/{user_id} [put] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) UpdateUser(c *gin.Context) {
	userID, err := request.IDParam(c, "user_id")
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	var req model.AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	user, err := h.service.AdminUpdateUser(c.Request.Context(), auth.FromContext(c), userID, &req)
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, model.UserResponse{User: *user})
}

// DeleteUser handles DELETE /admin/users/:user_id request.
// @Summary Delete an account, orphaning the teams it leads (admin only)
// @Tags Admin
// @Param user_id path int true "User ID"
// @Success 204
// @Failure 403 {object} response.ErrorResponse "FORBIDDEN"
// @Failure 404 {object} response.ErrorResponse "NOT_FOUND"
// @Router /admin/users/{user_id} [delete] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) DeleteUser(c *gin.Context) {
	userID, err := request.IDParam(c, "user_id")
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	if err := h.service.AdminDeleteUser(c.Request.Context(), auth.FromContext(c), userID); err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
