// Package service provides business logic layer for user module.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/teamwork/internal/auth"
	submissionRepository "github.com/festy23/teamwork/internal/submission/repository"
	teamRepository "github.com/festy23/teamwork/internal/team/repository"
	"github.com/festy23/teamwork/internal/user/model"
	"github.com/festy23/teamwork/internal/user/repository"
	"github.com/festy23/teamwork/pkg/validation"
)

// Service defines the interface for user business logic operations.
type Service interface {
	// Register creates an account with the USER role.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)

	// Login verifies credentials and issues an access token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)

	// Logout revokes the access token actor authenticated with.
	Logout(ctx context.Context, actor auth.Identity) error

	// GetByID returns a user.
	GetByID(ctx context.Context, userID int64) (*model.User, error)

	// EnsureAdmin creates or promotes the bootstrap administrator account.
	EnsureAdmin(ctx context.Context, username, password, name string) (*model.User, error)

	// AdminListUsers returns every user.
	AdminListUsers(ctx context.Context, actor auth.Identity) ([]model.User, error)

	// AdminUpdateUser edits another account.
	AdminUpdateUser(ctx context.Context, actor auth.Identity, userID int64, req *model.AdminUpdateUserRequest) (*model.User, error)

	// AdminDeleteUser deletes an account, orphaning the teams it leads.
	AdminDeleteUser(ctx context.Context, actor auth.Identity, userID int64) error
}

type service struct {
	repo    repository.Repository
	db      *gorm.DB
	hasher  auth.PasswordHasher
	tokens  *auth.TokenManager
	revoker auth.Revoker
	logger  *zap.SugaredLogger
	now     func() time.Time
}

// New creates a new user service instance.
func New(
	repo repository.Repository,
	db *gorm.DB,
	hasher auth.PasswordHasher,
	tokens *auth.TokenManager,
	revoker auth.Revoker,
	logger *zap.SugaredLogger,
) Service {
	if revoker == nil {
		revoker = auth.NopRevoker{}
	}
	return &service{
		repo:    repo,
		db:      db,
		hasher:  hasher,
		tokens:  tokens,
		revoker: revoker,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Register creates an account with the USER role.
func (s *service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	in := req.Normalized()
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &model.User{
		Username:     in.Username,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         model.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Infow("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login verifies credentials and issues an access token. Unknown usernames
// and wrong passwords produce the same error.
func (s *service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.repo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidLogin
		}
		return nil, err
	}
	if !s.hasher.Verify(user.PasswordHash, req.Password) {
		s.logger.Debugw("Login wrong password", "user_id", user.ID)
		return nil, model.ErrInvalidLogin
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("user logged in", "user_id", user.ID)
	return &model.LoginResponse{
		AccessToken: token.Value,
		TokenType:   "Bearer",
		ExpiresAt:   token.ExpiresAt,
		User:        *user,
	}, nil
}

// Logout revokes the access token actor authenticated with.
func (s *service) Logout(ctx context.Context, actor auth.Identity) error {
	if err := actor.RequireUser(); err != nil {
		return err
	}
	if actor.TokenID == "" {
		return nil
	}
	if err := s.revoker.Revoke(ctx, actor.TokenID, actor.ExpiresAt); err != nil {
		s.logger.Errorw("Logout failed to revoke token", "user_id", actor.UserID, "error", err)
		return err
	}
	s.logger.Infow("user logged out", "user_id", actor.UserID)
	return nil
}

// GetByID returns a user.
func (s *service) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// EnsureAdmin creates the administrator account, or promotes an existing
// account with that username. An existing password is left unchanged.
func (s *service) EnsureAdmin(ctx context.Context, username, password, name string) (*model.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		if user.IsAdmin() {
			return user, nil
		}
		user.Role = model.RoleAdmin
		user.UpdatedAt = s.now()
		if err := s.repo.Update(ctx, user); err != nil {
			return nil, err
		}
		s.logger.Infow("existing user promoted to administrator", "user_id", user.ID, "username", username)
		return user, nil
	case !errors.Is(err, model.ErrUserNotFound):
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	now := s.now()
	user = &model.User{
		Username:     username,
		Name:         name,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Infow("administrator account created", "user_id", user.ID, "username", username)
	return user, nil
}

// AdminListUsers returns every user.
func (s *service) AdminListUsers(ctx context.Context, actor auth.Identity) ([]model.User, error) {
	if !actor.IsAdmin() {
		return nil, model.ErrAdminRequired
	}
	return s.repo.List(ctx)
}

// AdminUpdateUser edits an account and copies the new username and name into
// every team the user leads, in one transaction. A blank password keeps the
// current one.
func (s *service) AdminUpdateUser(ctx context.Context, actor auth.Identity, userID int64, req *model.AdminUpdateUserRequest) (*model.User, error) {
	if !actor.IsAdmin() {
		return nil, model.ErrAdminRequired
	}
	in := req.Normalized()
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	role, err := model.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	var updated *model.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		user, err := txRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		user.Name = in.Name
		user.Username = in.Username
		user.Role = role
		user.UpdatedAt = s.now()
		if in.Password != "" {
			hash, err := s.hasher.Hash(in.Password)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
		}

		if err := txRepo.Update(ctx, user); err != nil {
			return err
		}
		if err := teamRepository.New(tx, s.logger).UpdateLeaderProfile(ctx, user.ID, user.Username, user.Name); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("user updated by administrator", "user_id", userID, "by", actor.UserID)
	return updated, nil
}

// AdminDeleteUser deletes an account in one transaction. Teams the user leads
// are orphaned, memberships and submissions are removed.
func (s *service) AdminDeleteUser(ctx context.Context, actor auth.Identity, userID int64) error {
	if !actor.IsAdmin() {
		return model.ErrAdminRequired
	}
	if actor.UserID == userID {
		return model.ErrCannotDeleteSelf
	}

	var orphaned int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		if _, err := txRepo.GetByID(ctx, userID); err != nil {
			return err
		}

		teams := teamRepository.New(tx, s.logger)
		var err error
		if orphaned, err = teams.OrphanTeamsLedBy(ctx, userID); err != nil {
			return err
		}
		if err := teams.RemoveUserFromAllTeams(ctx, userID); err != nil {
			return err
		}
		if err := submissionRepository.New(tx, s.logger).DeleteByUser(ctx, userID); err != nil {
			return err
		}
		return txRepo.Delete(ctx, userID)
	})
	if err != nil {
		return err
	}

	s.logger.Infow("user deleted by administrator", "user_id", userID, "orphaned_teams", orphaned, "by", actor.UserID)
	return nil
}
