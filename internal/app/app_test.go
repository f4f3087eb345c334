package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	assignmentModel "github.com/festy23/teamwork/internal/assignment/model"
	"github.com/festy23/teamwork/internal/auth"
	"github.com/festy23/teamwork/internal/metrics"
	statisticsModel "github.com/festy23/teamwork/internal/statistics/model"
	submissionModel "github.com/festy23/teamwork/internal/submission/model"
	teamModel "github.com/festy23/teamwork/internal/team/model"
	"github.com/festy23/teamwork/internal/testutil"
	userModel "github.com/festy23/teamwork/internal/user/model"
	"github.com/festy23/teamwork/pkg/response"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type memoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func (r *memoryRevoker) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[tokenID] = expiresAt
	return nil
}

func (r *memoryRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[tokenID]
	return ok, nil
}

type AppSuite struct {
	suite.Suite
	router  http.Handler
	deps    Deps
	metrics *metrics.Metrics
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppSuite))
}

func (s *AppSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	db := testutil.NewSQLite(s.T())
	s.metrics = metrics.New()
	s.deps = Deps{
		DB:             db,
		Logger:         testutil.Logger(),
		Tokens:         auth.NewTokenManager(testSecret, "teamwork", time.Hour),
		Hasher:         auth.NewBcryptHasher(bcrypt.MinCost),
		Revoker:        &memoryRevoker{revoked: map[string]time.Time{}},
		Metrics:        s.metrics,
		MaxUploadBytes: 1 << 10,
	}
	s.router = NewRouter(s.deps)
	s.Require().NoError(EnsureAdmin(context.Background(), s.deps, "root", "rootpassword", "Root"))
}

func (s *AppSuite) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, APIPrefix+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AppSuite) upload(path, token, name string, data []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", name)
	s.Require().NoError(err)
	_, err = fw.Write(data)
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, APIPrefix+path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AppSuite) decode(w *httptest.ResponseRecorder, v interface{}) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (s *AppSuite) errorCode(w *httptest.ResponseRecorder) string {
	var resp response.ErrorResponse
	s.decode(w, &resp)
	return resp.Error.Code
}

func (s *AppSuite) register(username string) {
	w := s.do(http.MethodPost, "/auth/register", "", userModel.RegisterRequest{
		Name: strings.ToUpper(username), Username: username, Password: username + "-password",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
}

func (s *AppSuite) login(username, password string) string {
	w := s.do(http.MethodPost, "/auth/login", "", userModel.LoginRequest{Username: username, Password: password})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp userModel.LoginResponse
	s.decode(w, &resp)
	return resp.AccessToken
}

func (s *AppSuite) signUp(username string) string {
	s.register(username)
	return s.login(username, username+"-password")
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

func (s *AppSuite) TestHealthAndMetrics() {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	s.Equal(http.StatusOK, w.Code)
	s.NotEmpty(w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `teamwork_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func (s *AppSuite) TestUnknownRoute() {
	w := s.do(http.MethodGet, "/nope", "", nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("NOT_FOUND", s.errorCode(w))
}

func (s *AppSuite) TestGuestsAreRejected() {
	for _, path := range []string{"/me", "/teams", "/admin/users"} {
		w := s.do(http.MethodGet, path, "", nil)
		s.Equal(http.StatusUnauthorized, w.Code, path)
	}
}

func (s *AppSuite) TestDuplicateRegistration() {
	s.register("alice")
	w := s.do(http.MethodPost, "/auth/register", "", userModel.RegisterRequest{
		Name: "Other", Username: "alice", Password: "another-password",
	})
	s.Equal(http.StatusConflict, w.Code)

	// The first account keeps its credentials.
	s.NotEmpty(s.login("alice", "alice-password"))
	w = s.do(http.MethodPost, "/auth/login", "", userModel.LoginRequest{Username: "alice", Password: "another-password"})
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AppSuite) TestLogoutRevokesToken() {
	token := s.signUp("alice")
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/me", token, nil).Code)

	s.Equal(http.StatusNoContent, s.do(http.MethodPost, "/auth/logout", token, nil).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/me", token, nil).Code)
}

func (s *AppSuite) TestClassroomScenario() {
	leader := s.signUp("lead")
	student := s.signUp("student")
	outsider := s.signUp("outsider")
	admin := s.login("root", "rootpassword")

	// Form a team.
	w := s.do(http.MethodPost, "/teams", leader, teamModel.CreateTeamRequest{
		Name: "Compilers", Description: "Spring cohort", Password: "joinme",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var created teamModel.TeamResponse
	s.decode(w, &created)
	teamPath := "/teams/" + id(created.Team.ID)

	// Join with a wrong and a right password.
	w = s.do(http.MethodPost, teamPath+"/join", student, teamModel.JoinTeamRequest{Password: "nope"})
	s.Equal(http.StatusUnauthorized, w.Code)
	w = s.do(http.MethodPost, teamPath+"/join", student, teamModel.JoinTeamRequest{Password: "joinme"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	w = s.do(http.MethodPost, teamPath+"/join", student, teamModel.JoinTeamRequest{Password: "joinme"})
	s.Equal(http.StatusConflict, w.Code)

	// Only the leader posts assignments.
	deadline := time.Now().UTC().Add(3 * time.Hour).Format(time.RFC3339)
	w = s.do(http.MethodPost, teamPath+"/assignments", student, assignmentModel.CreateAssignmentRequest{Name: "Lexer", Deadline: deadline})
	s.Equal(http.StatusForbidden, w.Code)
	w = s.do(http.MethodPost, teamPath+"/assignments", leader, assignmentModel.CreateAssignmentRequest{Name: "Lexer", Deadline: deadline})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var assignment assignmentModel.AssignmentResponse
	s.decode(w, &assignment)
	assignmentID := id(assignment.Assignment.ID)

	// The student owes work.
	var dash teamModel.DashboardResponse
	s.decode(s.do(http.MethodGet, "/me", student, nil), &dash)
	s.Require().Len(dash.Teams, 1)
	s.True(dash.Teams[0].HasUnsubmittedAssignment)
	s.False(dash.Teams[0].IsLeader)
	s.InDelta(2, dash.Teams[0].HoursUntilDeadline, 1)

	// Outsiders cannot submit; members can, and a resubmission replaces.
	w = s.upload("/assignments/"+assignmentID+"/submission", outsider, "lexer.go", []byte("package lexer"))
	s.Equal(http.StatusForbidden, w.Code)
	w = s.upload("/assignments/"+assignmentID+"/submission", student, "lexer.go", []byte("package lexer"))
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	w = s.upload("/assignments/"+assignmentID+"/submission", student, "lexer.go", []byte("package lexer // v2"))
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var sub submissionModel.SubmissionResponse
	s.decode(w, &sub)
	s.Equal("lexer.go", sub.Submission.FileName)
	s.False(sub.Submission.IsLate)

	w = s.upload("/assignments/"+assignmentID+"/submission", student, "big.bin", bytes.Repeat([]byte("x"), 2<<10))
	s.Equal(http.StatusRequestEntityTooLarge, w.Code)

	s.decode(s.do(http.MethodGet, "/me", student, nil), &dash)
	s.False(dash.Teams[0].HasUnsubmittedAssignment)

	// The leader reviews.
	var list submissionModel.SubmissionListResponse
	w = s.do(http.MethodGet, teamPath+"/assignments/"+assignmentID+"/submissions", leader, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.decode(w, &list)
	s.Require().Len(list.Submissions, 1)
	s.Equal("student", list.Submissions[0].Username)
	s.Equal(http.StatusForbidden, s.do(http.MethodGet, teamPath+"/submissions", admin, nil).Code)

	downloadPath := "/submissions/" + id(sub.Submission.ID) + "/download"
	w = s.do(http.MethodGet, downloadPath, leader, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	s.Require().NoError(err)
	s.Equal("package lexer // v2", string(body))
	s.Equal(http.StatusForbidden, s.do(http.MethodGet, downloadPath, outsider, nil).Code)
	s.Equal(http.StatusOK, s.do(http.MethodGet, downloadPath, admin, nil).Code)

	// Statistics.
	var teamStats statisticsModel.TeamStatisticsResponse
	w = s.do(http.MethodGet, teamPath+"/statistics", leader, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &teamStats)
	s.Equal(2, teamStats.Statistics.MemberCount)
	s.Equal(1, teamStats.Statistics.Members[0].SubmissionCount)
	s.Equal(http.StatusForbidden, s.do(http.MethodGet, teamPath+"/statistics", student, nil).Code)

	var global statisticsModel.GlobalStatisticsResponse
	s.Equal(http.StatusForbidden, s.do(http.MethodGet, "/admin/statistics", leader, nil).Code)
	s.decode(s.do(http.MethodGet, "/admin/statistics", admin, nil), &global)
	s.Equal(4, global.Statistics.Users)
	s.Equal(1, global.Statistics.Submissions)

	// Deleting the leader orphans the team; cleanup removes it with its work.
	var users userModel.UserListResponse
	s.decode(s.do(http.MethodGet, "/admin/users", admin, nil), &users)
	var leaderID int64
	for _, u := range users.Users {
		if u.Username == "lead" {
			leaderID = u.ID
		}
	}
	s.Require().NotZero(leaderID)
	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/admin/users/"+id(leaderID), admin, nil).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/me", leader, nil).Code)

	var cleanup teamModel.CleanupResponse
	w = s.do(http.MethodPost, "/admin/teams/cleanup", admin, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.decode(w, &cleanup)
	s.Equal(1, cleanup.Removed)

	s.decode(s.do(http.MethodGet, "/admin/statistics", admin, nil), &global)
	s.Equal(0, global.Statistics.Teams)
	s.Equal(0, global.Statistics.Assignments)
	s.Equal(0, global.Statistics.Submissions)
	s.Equal(0, global.Statistics.Memberships)
}

func TestNewRouter_NilMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewSQLite(t)
	r := NewRouter(Deps{
		DB:     db,
		Logger: testutil.Logger(),
		Tokens: auth.NewTokenManager(testSecret, "teamwork", time.Hour),
		Hasher: auth.NewBcryptHasher(bcrypt.MinCost),
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
}
