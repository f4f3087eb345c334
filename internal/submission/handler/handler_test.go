package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/teamwork/internal/auth"
	"github.com/festy23/teamwork/internal/submission/model"
	"github.com/festy23/teamwork/internal/submission/service"
	"github.com/festy23/teamwork/pkg/response"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Submit(ctx context.Context, actor auth.Identity, assignmentID int64, file model.File) (*model.Submission, error) {
	args := m.Called(ctx, actor, assignmentID, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Submission), args.Error(1)
}

func (m *mockService) Download(ctx context.Context, actor auth.Identity, submissionID int64) (*model.File, error) {
	args := m.Called(ctx, actor, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *mockService) GetMine(ctx context.Context, actor auth.Identity, assignmentID int64) (*model.Submission, error) {
	args := m.Called(ctx, actor, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Submission), args.Error(1)
}

func (m *mockService) ListForAssignment(ctx context.Context, actor auth.Identity, teamID, assignmentID int64) ([]model.SubmissionInfo, error) {
	args := m.Called(ctx, actor, teamID, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SubmissionInfo), args.Error(1)
}

func (m *mockService) ListForTeam(ctx context.Context, actor auth.Identity, teamID int64) ([]model.SubmissionInfo, error) {
	args := m.Called(ctx, actor, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SubmissionInfo), args.Error(1)
}

func (m *mockService) HasUnsubmittedFutureAssignment(ctx context.Context, teamID, userID int64) (bool, error) {
	args := m.Called(ctx, teamID, userID)
	return args.Bool(0), args.Error(1)
}

var _ service.Service = (*mockService)(nil)

var actor = auth.Identity{UserID: 4, Username: "alice"}

func setupRouter(svc service.Service, maxBytes int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		auth.SetIdentity(c, actor)
		c.Next()
	})
	h := New(svc, zap.NewNop().Sugar(), maxBytes)
	r.POST("/assignments/:assignment_id/submission", h.Submit)
	r.GET("/assignments/:assignment_id/submission", h.GetMine)
	r.GET("/submissions/:submission_id/download", h.Download)
	r.GET("/teams/:team_id/assignments/:assignment_id/submissions", h.ListForAssignment)
	r.GET("/teams/:team_id/submissions", h.ListForTeam)
	return r
}

func upload(t *testing.T, r http.Handler, path, field, name string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		fw, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error.Code
}

func TestHandler_Submit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(mockService)
		file := model.File{Name: "report.pdf", Data: []byte("%PDF")}
		svc.On("Submit", mock.Anything, actor, int64(7), file).Return(&model.Submission{
			ID: 1, AssignmentID: 7, UserID: 4, FileName: "report.pdf", ContentSize: 4,
		}, nil)

		w := upload(t, setupRouter(svc, 1024), "/assignments/7/submission", FormField, "report.pdf", []byte("%PDF"))

		require.Equal(t, http.StatusCreated, w.Code)
		var resp model.SubmissionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "report.pdf", resp.Submission.FileName)
		assert.NotContains(t, w.Body.String(), "file_data")
		svc.AssertExpectations(t)
	})

	t.Run("missing file field", func(t *testing.T) {
		svc := new(mockService)
		w := upload(t, setupRouter(svc, 1024), "/assignments/7/submission", "", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Submit")
	})

	t.Run("too large", func(t *testing.T) {
		svc := new(mockService)
		w := upload(t, setupRouter(svc, 8), "/assignments/7/submission", FormField, "big.bin", bytes.Repeat([]byte("x"), 9))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, "PAYLOAD_TOO_LARGE", errorCode(t, w))
		svc.AssertNotCalled(t, "Submit")
	})

	t.Run("empty file", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Submit", mock.Anything, actor, int64(7), mock.Anything).Return(nil, model.ErrEmptyFile)
		w := upload(t, setupRouter(svc, 1024), "/assignments/7/submission", FormField, "a.txt", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "EMPTY_FILE", errorCode(t, w))
	})

	t.Run("not a member", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Submit", mock.Anything, actor, int64(7), mock.Anything).Return(nil, model.ErrNotTeamMember)
		w := upload(t, setupRouter(svc, 1024), "/assignments/7/submission", FormField, "a.txt", []byte("a"))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestHandler_Download(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Download", mock.Anything, actor, int64(3)).Return(&model.File{Name: "LATE_отчёт v2.pdf", Data: []byte("bytes")}, nil)

		w := get(setupRouter(svc, 0), "/submissions/3/download")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
		assert.Equal(t, ContentDisposition("LATE_отчёт v2.pdf"), w.Header().Get("Content-Disposition"))
		assert.Equal(t, "bytes", w.Body.String())
	})

	t.Run("denied", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Download", mock.Anything, actor, int64(3)).Return(nil, model.ErrDownloadDenied)
		w := get(setupRouter(svc, 0), "/submissions/3/download")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Download", mock.Anything, actor, int64(3)).Return(nil, model.ErrSubmissionNotFound)
		w := get(setupRouter(svc, 0), "/submissions/3/download")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestContentDisposition(t *testing.T) {
	assert.Equal(t, "attachment; filename*=UTF-8''a%20b.txt", ContentDisposition("a b.txt"))
	assert.Equal(t, "attachment; filename*=UTF-8''%D1%8F.txt", ContentDisposition("я.txt"))
}

func TestHandler_GetMine(t *testing.T) {
	svc := new(mockService)
	svc.On("GetMine", mock.Anything, actor, int64(7)).Return(nil, model.ErrSubmissionNotFound)
	w := get(setupRouter(svc, 0), "/assignments/7/submission")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Lists(t *testing.T) {
	t.Run("for assignment", func(t *testing.T) {
		svc := new(mockService)
		svc.On("ListForAssignment", mock.Anything, actor, int64(2), int64(7)).Return([]model.SubmissionInfo{
			{ID: 1, Username: "bob", FileName: "LATE_x.txt", IsLate: true},
		}, nil)

		w := get(setupRouter(svc, 0), "/teams/2/assignments/7/submissions")

		require.Equal(t, http.StatusOK, w.Code)
		var resp model.SubmissionListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Submissions, 1)
		assert.True(t, resp.Submissions[0].IsLate)
	})

	t.Run("mismatch", func(t *testing.T) {
		svc := new(mockService)
		svc.On("ListForAssignment", mock.Anything, actor, int64(2), int64(7)).Return(nil, model.ErrAssignmentMismatch)
		w := get(setupRouter(svc, 0), "/teams/2/assignments/7/submissions")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "MISMATCH", errorCode(t, w))
	})

	t.Run("empty team list is an array", func(t *testing.T) {
		svc := new(mockService)
		svc.On("ListForTeam", mock.Anything, actor, int64(2)).Return([]model.SubmissionInfo(nil), nil)
		w := get(setupRouter(svc, 0), "/teams/2/submissions")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"submissions":[]}`, w.Body.String())
	})

	t.Run("team list forbidden", func(t *testing.T) {
		svc := new(mockService)
		svc.On("ListForTeam", mock.Anything, actor, int64(2)).Return(nil, model.ErrNotLeader)
		w := get(setupRouter(svc, 0), "/teams/2/submissions")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
