// Package handler provides HTTP handlers for submission endpoints.
package handler

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/teamwork/internal/auth"
	"github.com/festy23/teamwork/internal/submission/model"
	"github.com/festy23/teamwork/internal/submission/service"
	"github.com/festy23/teamwork/pkg/request"
	"github.com/festy23/teamwork/pkg/response"
)

// FormField is the multipart field carrying the uploaded file.
const FormField = "file"

// multipartOverhead is the slack allowed on top of the file size for the
// multipart envelope.
const multipartOverhead = 64 << 10

// Handler handles HTTP requests for submission endpoints.
type Handler struct {
	service  service.Service
	logger   *zap.SugaredLogger
	maxBytes int64
}

// New creates a new submission handler instance. Uploads above maxBytes are
// rejected with 413.
func New(svc service.Service, logger *zap.SugaredLogger, maxBytes int64) *Handler {
	return &Handler{service: svc, logger: logger, maxBytes: maxBytes}
}

// Submit handles POST /assignments/:assignment_id/submission request.
// @Summary Upload or replace the caller's submission
// @Tags Submissions
// @Accept multipart/form-data
// @Produce json
// @Param assignment_id path int true "Assignment ID"
// @Param file formData file true "Submission file"
// @Success 201 {object} model.SubmissionResponse
// @Failure 400 {object} response.ErrorResponse "EMPTY_FILE"
// @Failure 403 {object} response.ErrorResponse "FORBIDDEN"
// @Failure 413 {object} response.ErrorResponse "PAYLOAD_TOO_LARGE"
// @Router /assignments/{assignment_id}/submission [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Submit(c *gin.Context) {
	assignmentID, err := request.IDParam(c, "assignment_id")
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)
	}

	header, err := c.FormFile(FormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.FromError(c, h.logger, model.ErrFileTooLarge)
			return
		}
		response.BadRequest(c, "multipart field \"file\" is required")
		return
	}
	if h.maxBytes > 0 && header.Size > h.maxBytes {
		response.FromError(c, h.logger, model.ErrFileTooLarge)
		return
	}

	f, err := header.Open()
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}
	defer f.Close()

	var r io.Reader = f
	if h.maxBytes > 0 {
		r = io.LimitReader(f, h.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	sub, err := h.service.Submit(c.Request.Context(), auth.FromContext(c), assignmentID, model.File{
		Name: header.Filename,
		Data: data,
	})
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, model.SubmissionResponse{Submission: *sub})
}

// GetMine handles GET /assignments/:assignment_id/submission request.
// @Summary Get the caller's submission for an assignment
// @Tags Submissions
// @Produce json
// @Param assignment_id path int true "Assignment ID"
// @Success 200 {object} model.SubmissionResponse
// @Failure 404 {object} response.ErrorResponse "NOT_FOUND"
// @Router /assignments/{assignment_id}/submission [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetMine(c *gin.Context) {
	assignmentID, err := request.IDParam(c, "assignment_id")
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	sub, err := h.service.GetMine(c.Request.Context(), auth.FromContext(c), assignmentID)
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, model.SubmissionResponse{Submission: *sub})
}

// Download handles GET /submissions/:submission_id/download request.
// @Summary Download a submission file
// @Tags Submissions
// @Produce octet-stream
// @Param submission_id path int true "Submission ID"
// @Success 200 {file} file
// @Failure 403 {object} response.ErrorResponse "FORBIDDEN"
// @Failure 404 {object} response.ErrorResponse "NOT_FOUND"
// @Router /submissions/{submission_id}/download [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Download(c *gin.Context) {
	submissionID, err := request.IDParam(c, "submission_id")
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	file, err := h.service.Download(c.Request.Context(), auth.FromContext(c), submissionID)
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", ContentDisposition(file.Name))
	c.Data(http.StatusOK, "application/octet-stream", file.Data)
}

// ListForAssignment handles GET /teams/:team_id/assignments/:assignment_id/submissions request.
// @Summary List submissions for an assignment (leader only)
// @Tags Submissions
// @Produce json
// @Param team_id path int true "Team ID"
// @Param assignment_id path int true "Assignment ID"
// @Success 200 {object} model.SubmissionListResponse
// @Failure 400 {object} response.ErrorResponse "MISMATCH"
// @Failure 403 {object} response.ErrorResponse "FORBIDDEN"
// @Router /teams/{team_id}/assignments/{assignment_id}/submissions [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListForAssignment(c *gin.Context) {
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

	subs, err := h.service.ListForAssignment(c.Request.Context(), auth.FromContext(c), teamID, assignmentID)
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, model.SubmissionListResponse{Submissions: nonNil(subs)})
}

// ListForTeam handles GET /teams/:team_id/submissions request.
// @Summary List all submissions of a team (leader only)
// @Tags Submissions
// @Produce json
// @Param team_id path int true "Team ID"
// @Success 200 {object} model.SubmissionListResponse
// @Failure 403 {object} response.ErrorResponse "FORBIDDEN"
// @Router /teams/{team_id}/submissions [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListForTeam(c *gin.Context) {
	teamID, err := request.IDParam(c, "team_id")
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	subs, err := h.service.ListForTeam(c.Request.Context(), auth.FromContext(c), teamID)
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, model.SubmissionListResponse{Submissions: nonNil(subs)})
}

// ContentDisposition builds an attachment header that survives non-ASCII
// file names.
func ContentDisposition(name string) string {
	return "attachment; filename*=UTF-8''" + url.PathEscape(name)
}

func nonNil(subs []model.SubmissionInfo) []model.SubmissionInfo {
	if subs == nil {
		return []model.SubmissionInfo{}
	}
	return subs
}
