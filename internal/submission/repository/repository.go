// Package repository provides data access layer for submission module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/festy23/teamwork/internal/submission/model"
)

// Repository defines the interface for submission data access operations.
type Repository interface {
	// Upsert stores sub as the only submission of its (assignment, user) pair,
	// overwriting an earlier one, and returns the stored row without content.
	Upsert(ctx context.Context, sub *model.Submission) (*model.Submission, error)

	// GetByID finds submission by id, including its content.
	GetByID(ctx context.Context, submissionID int64) (*model.Submission, error)

	// GetByAssignmentAndUser finds the submission of userID for assignmentID
	// without its content.
	GetByAssignmentAndUser(ctx context.Context, assignmentID, userID int64) (*model.Submission, error)

	// ListByAssignment returns every submission for an assignment.
	ListByAssignment(ctx context.Context, assignmentID int64) ([]model.SubmissionInfo, error)

	// ListByTeam returns every submission for the assignments of a team.
	ListByTeam(ctx context.Context, teamID int64) ([]model.SubmissionInfo, error)

	// SubmittedAssignmentIDs returns the ids of the team's assignments that
	// userID has submitted.
	SubmittedAssignmentIDs(ctx context.Context, teamID, userID int64) ([]int64, error)

	// DeleteByUser removes every submission of userID.
	DeleteByUser(ctx context.Context, userID int64) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new submission repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

const infoColumns = "submissions.id, submissions.assignment_id, assignments.name AS assignment_name, " +
	"submissions.user_id, users.username, users.name, submissions.file_name, submissions.stored_name, " +
	"submissions.content_size, submissions.is_late, submissions.submitted_at"

// Upsert relies on the unique (assignment_id, user_id) index so concurrent
// uploads of the same user never produce two rows.
func (r *repository) Upsert(ctx context.Context, sub *model.Submission) (*model.Submission, error) {
	r.logger.Debugw("Upsert called", "assignment_id", sub.AssignmentID, "user_id", sub.UserID)

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "assignment_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"file_name", "stored_name", "file_data", "content_size", "is_late", "submitted_at",
			}),
		}).
		Create(sub).Error
	if err != nil {
		r.logger.Errorw("Upsert database error", "assignment_id", sub.AssignmentID, "user_id", sub.UserID, "error", err)
		return nil, err
	}

	// The returned id of an updated row is driver dependent, so read it back.
	return r.GetByAssignmentAndUser(ctx, sub.AssignmentID, sub.UserID)
}

// GetByID finds submission by id, including its content.
func (r *repository) GetByID(ctx context.Context, submissionID int64) (*model.Submission, error) {
	var sub model.Submission
	err := r.db.WithContext(ctx).Where("id = ?", submissionID).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrSubmissionNotFound
		}
		r.logger.Errorw("GetByID database error", "submission_id", submissionID, "error", err)
		return nil, err
	}
	return &sub, nil
}

// GetByAssignmentAndUser finds the submission of userID for assignmentID
// without its content.
func (r *repository) GetByAssignmentAndUser(ctx context.Context, assignmentID, userID int64) (*model.Submission, error) {
	var sub model.Submission
	err := r.db.WithContext(ctx).
		Omit("file_data").
		Where("assignment_id = ? AND user_id = ?", assignmentID, userID).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrSubmissionNotFound
		}
		r.logger.Errorw("GetByAssignmentAndUser database error",
			"assignment_id", assignmentID, "user_id", userID, "error", err)
		return nil, err
	}
	return &sub, nil
}

func (r *repository) infoQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("submissions").
		Select(infoColumns).
		Joins("JOIN assignments ON assignments.id = submissions.assignment_id").
		Joins("JOIN users ON users.id = submissions.user_id")
}

// ListByAssignment returns every submission for an assignment ordered by
// username.
func (r *repository) ListByAssignment(ctx context.Context, assignmentID int64) ([]model.SubmissionInfo, error) {
	var infos []model.SubmissionInfo
	err := r.infoQuery(ctx).
		Where("submissions.assignment_id = ?", assignmentID).
		Order("users.username ASC").
		Scan(&infos).Error
	if err != nil {
		r.logger.Errorw("ListByAssignment database error", "assignment_id", assignmentID, "error", err)
		return nil, err
	}
	if infos == nil {
		infos = []model.SubmissionInfo{}
	}
	return infos, nil
}

// ListByTeam returns every submission for the assignments of a team ordered
// by assignment deadline, then username.
func (r *repository) ListByTeam(ctx context.Context, teamID int64) ([]model.SubmissionInfo, error) {
	var infos []model.SubmissionInfo
	err := r.infoQuery(ctx).
		Where("assignments.team_id = ?", teamID).
		Order("assignments.deadline ASC, assignments.id ASC, users.username ASC").
		Scan(&infos).Error
	if err != nil {
		r.logger.Errorw("ListByTeam database error", "team_id", teamID, "error", err)
		return nil, err
	}
	if infos == nil {
		infos = []model.SubmissionInfo{}
	}
	return infos, nil
}

// SubmittedAssignmentIDs returns the ids of the team's assignments that
// userID has submitted.
func (r *repository) SubmittedAssignmentIDs(ctx context.Context, teamID, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Table("submissions").
		Joins("JOIN assignments ON assignments.id = submissions.assignment_id").
		Where("assignments.team_id = ? AND submissions.user_id = ?", teamID, userID).
		Pluck("submissions.assignment_id", &ids).Error
	if err != nil {
		r.logger.Errorw("SubmittedAssignmentIDs database error", "team_id", teamID, "user_id", userID, "error", err)
		return nil, err
	}
	return ids, nil
}

// DeleteByUser removes every submission of userID.
func (r *repository) DeleteByUser(ctx context.Context, userID int64) error {
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Submission{}).Error
	if err != nil {
		r.logger.Errorw("DeleteByUser database error", "user_id", userID, "error", err)
	}
	return err
}
