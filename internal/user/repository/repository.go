// Package repository provides data access layer for user module.
package repository

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/teamwork/internal/user/model"
)

// Repository defines the interface for user data access operations.
type Repository interface {
	// Create inserts a new user.
	Create(ctx context.Context, user *model.User) error

	// GetByID finds user by id.
	GetByID(ctx context.Context, userID int64) (*model.User, error)

	// GetByUsername finds user by username.
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// List returns all users ordered by id.
	List(ctx context.Context) ([]model.User, error)

	// Update stores the profile, credentials and role of an existing user.
	Update(ctx context.Context, user *model.User) error

	// Delete removes the user row.
	Delete(ctx context.Context, userID int64) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new user repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create inserts a new user.
func (r *repository) Create(ctx context.Context, user *model.User) error {
	r.logger.Debugw("Create called", "username", user.Username)

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateError(err) {
			return model.ErrUsernameTaken
		}
		r.logger.Errorw("Create database error", "username", user.Username, "error", err)
		return err
	}

	r.logger.Infow("Create completed", "user_id", user.ID, "username", user.Username)
	return nil
}

// GetByID finds user by id.
func (r *repository) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	return r.first(ctx, "id = ?", userID)
}

// GetByUsername finds user by username.
func (r *repository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *repository) first(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrUserNotFound
		}
		r.logger.Errorw("user lookup database error", "query", query, "error", err)
		return nil, err
	}
	return &user, nil
}

// List returns all users ordered by id.
func (r *repository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		r.logger.Errorw("List database error", "error", err)
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// Update stores the profile, credentials and role of an existing user.
func (r *repository) Update(ctx context.Context, user *model.User) error {
	r.logger.Debugw("Update called", "user_id", user.ID)

	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"username":      user.Username,
			"name":          user.Name,
			"password_hash": user.PasswordHash,
			"role":          user.Role,
			"updated_at":    user.UpdatedAt,
		})
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return model.ErrUsernameTaken
		}
		r.logger.Errorw("Update database error", "user_id", user.ID, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// Delete removes the user row.
func (r *repository) Delete(ctx context.Context, userID int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", userID).Delete(&model.User{})
	if result.Error != nil {
		r.logger.Errorw("Delete database error", "user_id", userID, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrUserNotFound
	}
	r.logger.Infow("Delete completed", "user_id", userID)
	return nil
}

// isDuplicateError checks if error is a unique constraint violation on
// PostgreSQL or SQLite.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
