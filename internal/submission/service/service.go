// Package service provides business logic layer for submission module.
package service

import (
	"context"
	"errors"
	"slices"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	assignmentRepository "github.com/festy23/teamwork/internal/assignment/repository"
	"github.com/festy23/teamwork/internal/auth"
	"github.com/festy23/teamwork/internal/metrics"
	"github.com/festy23/teamwork/internal/submission/model"
	"github.com/festy23/teamwork/internal/submission/repository"
	teamRepository "github.com/festy23/teamwork/internal/team/repository"
)

// Service defines the interface for submission business logic operations.
type Service interface {
	// Submit stores file as actor's submission for the assignment, replacing
	// an earlier one.
	Submit(ctx context.Context, actor auth.Identity, assignmentID int64, file model.File) (*model.Submission, error)

	// Download returns the stored file to its submitter, the team leader or
	// an administrator.
	Download(ctx context.Context, actor auth.Identity, submissionID int64) (*model.File, error)

	// GetMine returns actor's submission for the assignment.
	GetMine(ctx context.Context, actor auth.Identity, assignmentID int64) (*model.Submission, error)

	// ListForAssignment returns all submissions for an assignment. Leader only.
	ListForAssignment(ctx context.Context, actor auth.Identity, teamID, assignmentID int64) ([]model.SubmissionInfo, error)

	// ListForTeam returns all submissions for a team's assignments. Leader only.
	ListForTeam(ctx context.Context, actor auth.Identity, teamID int64) ([]model.SubmissionInfo, error)

	// HasUnsubmittedFutureAssignment reports whether the team has an open
	// assignment userID has not submitted.
	HasUnsubmittedFutureAssignment(ctx context.Context, teamID, userID int64) (bool, error)
}

type service struct {
	repo        repository.Repository
	assignments assignmentRepository.Repository
	teams       teamRepository.Repository
	db          *gorm.DB
	logger      *zap.SugaredLogger
	metrics     *metrics.Metrics
	maxBytes    int64
	now         func() time.Time
}

// New creates a new submission service instance. A maxBytes of zero or less
// disables the size limit.
func New(
	repo repository.Repository,
	assignments assignmentRepository.Repository,
	teams teamRepository.Repository,
	db *gorm.DB,
	logger *zap.SugaredLogger,
	m *metrics.Metrics,
	maxBytes int64,
) Service {
	return &service{
		repo:        repo,
		assignments: assignments,
		teams:       teams,
		db:          db,
		logger:      logger,
		metrics:     m,
		maxBytes:    maxBytes,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Submit stores file as actor's only submission for the assignment. A
// submission after the deadline gets a late marker in its file name.
func (s *service) Submit(ctx context.Context, actor auth.Identity, assignmentID int64, file model.File) (*model.Submission, error) {
	if err := actor.RequireUser(); err != nil {
		return nil, err
	}
	if len(file.Data) == 0 {
		return nil, model.ErrEmptyFile
	}
	if s.maxBytes > 0 && int64(len(file.Data)) > s.maxBytes {
		return nil, model.ErrFileTooLarge
	}

	var (
		stored       *model.Submission
		late         bool
		resubmission bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assignment, err := assignmentRepository.New(tx, s.logger).GetByID(ctx, assignmentID)
		if err != nil {
			return err
		}
		member, err := teamRepository.New(tx, s.logger).IsMember(ctx, assignment.TeamID, actor.UserID)
		if err != nil {
			return err
		}
		if !member {
			return model.ErrNotTeamMember
		}

		txRepo := repository.New(tx, s.logger)
		_, err = txRepo.GetByAssignmentAndUser(ctx, assignmentID, actor.UserID)
		switch {
		case err == nil:
			resubmission = true
		case !errors.Is(err, model.ErrSubmissionNotFound):
			return err
		}

		now := s.now()
		late = assignment.IsPastDeadline(now)
		name := model.CleanFileName(file.Name)

		stored, err = txRepo.Upsert(ctx, &model.Submission{
			AssignmentID: assignmentID,
			UserID:       actor.UserID,
			FileName:     model.TagFileName(name, late, resubmission),
			StoredName:   model.NewStoredName(name),
			FileData:     file.Data,
			ContentSize:  int64(len(file.Data)),
			IsLate:       late,
			SubmittedAt:  now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.SubmissionStored(late, resubmission)
	s.logger.Infow("submission stored",
		"submission_id", stored.ID,
		"assignment_id", assignmentID,
		"user_id", actor.UserID,
		"size", stored.ContentSize,
		"late", late,
		"resubmission", resubmission,
	)
	return stored, nil
}

// Download returns the stored file.
func (s *service) Download(ctx context.Context, actor auth.Identity, submissionID int64) (*model.File, error) {
	if err := actor.RequireUser(); err != nil {
		return nil, err
	}

	sub, err := s.repo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	if sub.UserID != actor.UserID && !actor.IsAdmin() {
		assignment, err := s.assignments.GetByID(ctx, sub.AssignmentID)
		if err != nil {
			return nil, err
		}
		team, err := s.teams.GetByID(ctx, assignment.TeamID)
		if err != nil {
			return nil, err
		}
		if !team.IsLedBy(actor.UserID) {
			return nil, model.ErrDownloadDenied
		}
	}

	s.logger.Debugw("submission downloaded", "submission_id", submissionID, "by", actor.UserID)
	return &model.File{Name: sub.FileName, Data: sub.FileData}, nil
}

// GetMine returns actor's submission for the assignment.
func (s *service) GetMine(ctx context.Context, actor auth.Identity, assignmentID int64) (*model.Submission, error) {
	if err := actor.RequireUser(); err != nil {
		return nil, err
	}
	if _, err := s.assignments.GetByID(ctx, assignmentID); err != nil {
		return nil, err
	}
	return s.repo.GetByAssignmentAndUser(ctx, assignmentID, actor.UserID)
}

// ListForAssignment returns all submissions for an assignment.
func (s *service) ListForAssignment(ctx context.Context, actor auth.Identity, teamID, assignmentID int64) ([]model.SubmissionInfo, error) {
	if err := s.requireLeader(ctx, actor, teamID); err != nil {
		return nil, err
	}

	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.TeamID != teamID {
		return nil, model.ErrAssignmentMismatch
	}
	return s.repo.ListByAssignment(ctx, assignmentID)
}

// ListForTeam returns all submissions for a team's assignments.
func (s *service) ListForTeam(ctx context.Context, actor auth.Identity, teamID int64) ([]model.SubmissionInfo, error) {
	if err := s.requireLeader(ctx, actor, teamID); err != nil {
		return nil, err
	}
	return s.repo.ListByTeam(ctx, teamID)
}

func (s *service) requireLeader(ctx context.Context, actor auth.Identity, teamID int64) error {
	if err := actor.RequireUser(); err != nil {
		return err
	}
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if !team.IsLedBy(actor.UserID) {
		return model.ErrNotLeader
	}
	return nil
}

// HasUnsubmittedFutureAssignment is recomputed on every call.
func (s *service) HasUnsubmittedFutureAssignment(ctx context.Context, teamID, userID int64) (bool, error) {
	assignments, err := s.assignments.ListByTeam(ctx, teamID)
	if err != nil {
		return false, err
	}
	submitted, err := s.repo.SubmittedAssignmentIDs(ctx, teamID, userID)
	if err != nil {
		return false, err
	}

	now := s.now()
	for _, a := range assignments {
		if a.Deadline.After(now) && !slices.Contains(submitted, a.ID) {
			return true, nil
		}
	}
	return false, nil
}
