// Package repository provides data access layer for statistics module.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/teamwork/internal/statistics/model"
)

// Repository defines the interface for statistics data access operations.
type Repository interface {
	// GetMemberStatistics returns per member submission counts for a team.
	GetMemberStatistics(ctx context.Context, teamID int64) ([]model.MemberStatistics, error)

	// CountAssignments returns the number of assignments of a team.
	CountAssignments(ctx context.Context, teamID int64) (int, error)

	// GetGlobalStatistics returns application wide counters.
	GetGlobalStatistics(ctx context.Context) (*model.GlobalStatistics, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new statistics repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// GetMemberStatistics returns members ordered by submission count, busiest first.
func (r *repository) GetMemberStatistics(ctx context.Context, teamID int64) ([]model.MemberStatistics, error) {
	r.logger.Debugw("GetMemberStatistics called", "team_id", teamID)

	var stats []model.MemberStatistics
	err := r.db.WithContext(ctx).
		Table("team_members").
		Select(`
			users.id AS user_id,
			users.username,
			users.name,
			COUNT(team_submissions.id) AS submission_count,
			COALESCE(SUM(CASE WHEN team_submissions.is_late THEN 1 ELSE 0 END), 0) AS late_count
		`).
		Joins("JOIN users ON users.id = team_members.user_id").
		Joins(`
			LEFT JOIN (
				SELECT submissions.id, submissions.user_id, submissions.is_late
				FROM submissions
				JOIN assignments ON assignments.id = submissions.assignment_id
				WHERE assignments.team_id = ?
			) team_submissions ON team_submissions.user_id = users.id
		`, teamID).
		Where("team_members.team_id = ?", teamID).
		Group("users.id, users.username, users.name").
		Order("submission_count DESC, users.id ASC").
		Scan(&stats).Error
	if err != nil {
		r.logger.Errorw("GetMemberStatistics database error", "team_id", teamID, "error", err)
		return nil, err
	}

	if stats == nil {
		stats = []model.MemberStatistics{}
	}
	r.logger.Debugw("GetMemberStatistics completed", "team_id", teamID, "count", len(stats))
	return stats, nil
}

// CountAssignments returns the number of assignments of a team.
func (r *repository) CountAssignments(ctx context.Context, teamID int64) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("assignments").Where("team_id = ?", teamID).Count(&n).Error
	if err != nil {
		r.logger.Errorw("CountAssignments database error", "team_id", teamID, "error", err)
		return 0, err
	}
	return int(n), nil
}

// GetGlobalStatistics returns application wide counters.
func (r *repository) GetGlobalStatistics(ctx context.Context) (*model.GlobalStatistics, error) {
	r.logger.Debugw("GetGlobalStatistics called")

	var result struct {
		Users           int64 `gorm:"column:users"`
		Teams           int64 `gorm:"column:teams"`
		OrphanTeams     int64 `gorm:"column:orphan_teams"`
		Assignments     int64 `gorm:"column:assignments"`
		Submissions     int64 `gorm:"column:submissions"`
		LateSubmissions int64 `gorm:"column:late_submissions"`
		Memberships     int64 `gorm:"column:memberships"`
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM users) AS users,
			(SELECT COUNT(*) FROM teams) AS teams,
			(SELECT COUNT(*) FROM teams WHERE leader_id IS NULL) AS orphan_teams,
			(SELECT COUNT(*) FROM assignments) AS assignments,
			(SELECT COUNT(*) FROM submissions) AS submissions,
			(SELECT COUNT(*) FROM submissions WHERE is_late = ?) AS late_submissions,
			(SELECT COUNT(*) FROM team_members) AS memberships
	`, true).Scan(&result).Error
	if err != nil {
		r.logger.Errorw("GetGlobalStatistics database error", "error", err)
		return nil, err
	}

	stats := &model.GlobalStatistics{
		Users:           int(result.Users),
		Teams:           int(result.Teams),
		OrphanTeams:     int(result.OrphanTeams),
		Assignments:     int(result.Assignments),
		Submissions:     int(result.Submissions),
		LateSubmissions: int(result.LateSubmissions),
		Memberships:     int(result.Memberships),
	}
	r.logger.Debugw("GetGlobalStatistics completed", "users", stats.Users, "teams", stats.Teams)
	return stats, nil
}
