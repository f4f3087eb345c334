// Package repository provides data access layer for assignment module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/teamwork/internal/assignment/model"
	submissionModel "github.com/festy23/teamwork/internal/submission/model"
)

// Repository defines the interface for assignment data access operations.
type Repository interface {
	// Create inserts a new assignment.
	Create(ctx context.Context, assignment *model.Assignment) error

	// GetByID finds assignment by id.
	GetByID(ctx context.Context, assignmentID int64) (*model.Assignment, error)

	// ListByTeam returns the assignments of a team ordered by deadline.
	ListByTeam(ctx context.Context, teamID int64) ([]model.Assignment, error)

	// Delete removes the assignment and its submissions.
	Delete(ctx context.Context, assignmentID int64) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new assignment repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create inserts a new assignment.
func (r *repository) Create(ctx context.Context, assignment *model.Assignment) error {
	if err := r.db.WithContext(ctx).Create(assignment).Error; err != nil {
		r.logger.Errorw("Create database error", "team_id", assignment.TeamID, "error", err)
		return err
	}
	r.logger.Debugw("Create completed", "assignment_id", assignment.ID, "team_id", assignment.TeamID)
	return nil
}

// GetByID finds assignment by id.
func (r *repository) GetByID(ctx context.Context, assignmentID int64) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).Where("id = ?", assignmentID).First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrAssignmentNotFound
		}
		r.logger.Errorw("GetByID database error", "assignment_id", assignmentID, "error", err)
		return nil, err
	}
	return &assignment, nil
}

// ListByTeam returns the assignments of a team ordered by deadline.
func (r *repository) ListByTeam(ctx context.Context, teamID int64) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("deadline ASC, id ASC").
		Find(&assignments).Error
	if err != nil {
		r.logger.Errorw("ListByTeam database error", "team_id", teamID, "error", err)
		return nil, err
	}
	if assignments == nil {
		assignments = []model.Assignment{}
	}
	return assignments, nil
}

// Delete removes the assignment and its submissions. Callers run it inside a
// transaction.
func (r *repository) Delete(ctx context.Context, assignmentID int64) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("assignment_id = ?", assignmentID).Delete(&submissionModel.Submission{}).Error; err != nil {
		r.logger.Errorw("Delete submissions failed", "assignment_id", assignmentID, "error", err)
		return err
	}

	result := db.Where("id = ?", assignmentID).Delete(&model.Assignment{})
	if result.Error != nil {
		r.logger.Errorw("Delete assignment failed", "assignment_id", assignmentID, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrAssignmentNotFound
	}

	r.logger.Debugw("Delete completed", "assignment_id", assignmentID)
	return nil
}
