// Package service provides business logic layer for assignment module.
package service

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/teamwork/internal/assignment/model"
	"github.com/festy23/teamwork/internal/assignment/repository"
	"github.com/festy23/teamwork/internal/auth"
	submissionRepository "github.com/festy23/teamwork/internal/submission/repository"
	teamRepository "github.com/festy23/teamwork/internal/team/repository"
	"github.com/festy23/teamwork/pkg/validation"
)

// Service defines the interface for assignment business logic operations.
type Service interface {
	// CreateAssignment posts an assignment to a team. Leader only.
	CreateAssignment(ctx context.Context, actor auth.Identity, teamID int64, req *model.CreateAssignmentRequest) (*model.Assignment, error)

	// DeleteAssignment removes an assignment and its submissions. Leader only.
	DeleteAssignment(ctx context.Context, actor auth.Identity, teamID, assignmentID int64) error

	// ListAssignmentsForTeam returns the team's assignments annotated for viewer.
	ListAssignmentsForTeam(ctx context.Context, viewer auth.Identity, teamID int64) ([]model.AssignmentView, error)
}

type service struct {
	repo        repository.Repository
	teams       teamRepository.Repository
	submissions submissionRepository.Repository
	db          *gorm.DB
	logger      *zap.SugaredLogger
	now         func() time.Time
}

// New creates a new assignment service instance.
func New(
	repo repository.Repository,
	teams teamRepository.Repository,
	submissions submissionRepository.Repository,
	db *gorm.DB,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:        repo,
		teams:       teams,
		submissions: submissions,
		db:          db,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreateAssignment posts an assignment to a team.
func (s *service) CreateAssignment(ctx context.Context, actor auth.Identity, teamID int64, req *model.CreateAssignmentRequest) (*model.Assignment, error) {
	if err := actor.RequireUser(); err != nil {
		return nil, err
	}
	in := req.Normalized()
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	deadline, err := model.ParseDeadline(in.Deadline, time.UTC)
	if err != nil {
		return nil, err
	}

	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !team.IsLedBy(actor.UserID) {
		return nil, model.ErrNotLeader
	}

	now := s.now()
	assignment := &model.Assignment{
		TeamID:      teamID,
		Name:        in.Name,
		Description: in.Description,
		Deadline:    deadline,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, assignment); err != nil {
		return nil, err
	}

	s.logger.Infow("assignment created", "assignment_id", assignment.ID, "team_id", teamID, "deadline", deadline)
	return assignment, nil
}

// DeleteAssignment removes an assignment and its submissions in one
// transaction.
func (s *service) DeleteAssignment(ctx context.Context, actor auth.Identity, teamID, assignmentID int64) error {
	if err := actor.RequireUser(); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		team, err := teamRepository.New(tx, s.logger).GetByID(ctx, teamID)
		if err != nil {
			return err
		}
		if !team.IsLedBy(actor.UserID) {
			return model.ErrNotLeader
		}

		txRepo := repository.New(tx, s.logger)
		assignment, err := txRepo.GetByID(ctx, assignmentID)
		if err != nil {
			return err
		}
		if assignment.TeamID != teamID {
			return model.ErrTeamMismatch
		}
		return txRepo.Delete(ctx, assignmentID)
	})
	if err != nil {
		return err
	}

	s.logger.Infow("assignment deleted", "assignment_id", assignmentID, "team_id", teamID, "by", actor.UserID)
	return nil
}

// ListAssignmentsForTeam returns every assignment of the team, open ones
// first, each group by ascending deadline.
func (s *service) ListAssignmentsForTeam(ctx context.Context, viewer auth.Identity, teamID int64) ([]model.AssignmentView, error) {
	if err := viewer.RequireUser(); err != nil {
		return nil, err
	}
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		return nil, err
	}
	if !viewer.IsAdmin() {
		member, err := s.teams.IsMember(ctx, teamID, viewer.UserID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, model.ErrMembersOnly
		}
	}

	assignments, err := s.repo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	submitted, err := s.submissions.SubmittedAssignmentIDs(ctx, teamID, viewer.UserID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]model.AssignmentView, 0, len(assignments))
	for _, a := range assignments {
		views = append(views, model.AssignmentView{
			Assignment:     a,
			Submitted:      slices.Contains(submitted, a.ID),
			DeadlinePassed: a.IsPastDeadline(now),
		})
	}
	SortByDeadline(views)
	return views, nil
}

// SortByDeadline orders views with open deadlines before passed ones and by
// ascending deadline within each group. The sort is stable.
func SortByDeadline(views []model.AssignmentView) {
	slices.SortStableFunc(views, func(a, b model.AssignmentView) int {
		if a.DeadlinePassed != b.DeadlinePassed {
			if a.DeadlinePassed {
				return 1
			}
			return -1
		}
		return a.Deadline.Compare(b.Deadline)
	})
}
