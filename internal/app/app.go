// Package app assembles the HTTP engine from the feature modules.
package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	assignmentRouter "github.com/festy23/teamwork/internal/assignment/router"
	"github.com/festy23/teamwork/internal/auth"
	"github.com/festy23/teamwork/internal/health"
	"github.com/festy23/teamwork/internal/metrics"
	"github.com/festy23/teamwork/internal/middleware"
	statisticsRouter "github.com/festy23/teamwork/internal/statistics/router"
	submissionRouter "github.com/festy23/teamwork/internal/submission/router"
	teamRouter "github.com/festy23/teamwork/internal/team/router"
	userRepository "github.com/festy23/teamwork/internal/user/repository"
	userRouter "github.com/festy23/teamwork/internal/user/router"
	userService "github.com/festy23/teamwork/internal/user/service"
	"github.com/festy23/teamwork/pkg/response"
)

// APIPrefix is the path prefix of every JSON endpoint.
const APIPrefix = "/api/v1"

// Deps are the shared collaborators of all modules.
type Deps struct {
	DB      *gorm.DB
	Logger  *zap.SugaredLogger
	Tokens  *auth.TokenManager
	Hasher  auth.PasswordHasher
	Revoker auth.Revoker
	Metrics *metrics.Metrics
	// MaxUploadBytes limits a single submission file.
	MaxUploadBytes int64
}

// NewRouter builds the gin engine with middleware and every module route.
func NewRouter(d Deps) *gin.Engine {
	if d.Revoker == nil {
		d.Revoker = auth.NopRevoker{}
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		middleware.Recovery(d.Logger),
		middleware.Metrics(d.Metrics),
	)
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, "NOT_FOUND", "route not found", http.StatusNotFound)
	})

	r.GET("/health", health.New(d.DB, d.Logger).Check)
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	users := userRepository.New(d.DB, d.Logger)
	public := r.Group(APIPrefix)
	public.Use(middleware.Authenticate(d.Tokens, d.Revoker, users.GetByID, d.Logger))
	api := public.Group("", middleware.RequireAuth(d.Logger))
	admin := api.Group("/admin", middleware.RequireAdmin(d.Logger))

	userRouter.RegisterRoutes(public, api, admin, d.DB, d.Logger, d.Hasher, d.Tokens, d.Revoker)
	teamRouter.RegisterRoutes(api, admin, d.DB, d.Logger, d.Hasher, d.Metrics)
	assignmentRouter.RegisterRoutes(api, d.DB, d.Logger)
	submissionRouter.RegisterRoutes(api, d.DB, d.Logger, d.Metrics, d.MaxUploadBytes)
	statisticsRouter.RegisterRoutes(api, admin, d.DB, d.Logger)

	return r
}

// EnsureAdmin creates or promotes the bootstrap administrator account.
func EnsureAdmin(ctx context.Context, d Deps, username, password, name string) error {
	svc := userService.New(userRepository.New(d.DB, d.Logger), d.DB, d.Hasher, d.Tokens, d.Revoker, d.Logger)
	_, err := svc.EnsureAdmin(ctx, username, password, name)
	return err
}
