// Package service provides business logic layer for statistics module.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/festy23/teamwork/internal/auth"
	"github.com/festy23/teamwork/internal/statistics/model"
	"github.com/festy23/teamwork/internal/statistics/repository"
	teamRepository "github.com/festy23/teamwork/internal/team/repository"
)

// Service defines the interface for statistics business logic operations.
type Service interface {
	// GetTeamStatistics returns member submission counts of a team. Leader or
	// administrator only.
	GetTeamStatistics(ctx context.Context, actor auth.Identity, teamID int64) (*model.TeamStatisticsResponse, error)

	// GetGlobalStatistics returns application wide counters. Administrator only.
	GetGlobalStatistics(ctx context.Context, actor auth.Identity) (*model.GlobalStatisticsResponse, error)
}

type service struct {
	repo   repository.Repository
	teams  teamRepository.Repository
	logger *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(repo repository.Repository, teams teamRepository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		teams:  teams,
		logger: logger,
	}
}

// GetTeamStatistics returns member submission counts of a team.
func (s *service) GetTeamStatistics(ctx context.Context, actor auth.Identity, teamID int64) (*model.TeamStatisticsResponse, error) {
	if err := actor.RequireUser(); err != nil {
		return nil, err
	}

	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !team.IsLedBy(actor.UserID) && !actor.IsAdmin() {
		return nil, model.ErrLeaderOrAdmin
	}

	members, err := s.repo.GetMemberStatistics(ctx, teamID)
	if err != nil {
		s.logger.Errorw("GetTeamStatistics failed", "team_id", teamID, "error", err)
		return nil, err
	}
	assignments, err := s.repo.CountAssignments(ctx, teamID)
	if err != nil {
		return nil, err
	}

	stats := model.TeamStatistics{
		TeamID:          team.ID,
		TeamName:        team.Name,
		AssignmentCount: assignments,
		MemberCount:     len(members),
		Members:         members,
	}
	if expected := len(members) * assignments; expected > 0 {
		submitted := 0
		for _, m := range members {
			submitted += m.SubmissionCount
		}
		stats.CompletionRate = float64(submitted) / float64(expected)
	}

	s.logger.Debugw("GetTeamStatistics completed", "team_id", teamID, "members", stats.MemberCount)
	return &model.TeamStatisticsResponse{Statistics: stats}, nil
}

// GetGlobalStatistics returns application wide counters.
func (s *service) GetGlobalStatistics(ctx context.Context, actor auth.Identity) (*model.GlobalStatisticsResponse, error) {
	if !actor.IsAdmin() {
		return nil, model.ErrAdminRequired
	}

	stats, err := s.repo.GetGlobalStatistics(ctx)
	if err != nil {
		s.logger.Errorw("GetGlobalStatistics failed", "error", err)
		return nil, err
	}
	if stats.Teams > 0 {
		stats.AverageMembersPerTeam = float64(stats.Memberships) / float64(stats.Teams)
	}

	return &model.GlobalStatisticsResponse{Statistics: *stats}, nil
}
