// Package repository provides data access layer for team module.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	assignmentModel "github.com/festy23/teamwork/internal/assignment/model"
	submissionModel "github.com/festy23/teamwork/internal/submission/model"
	teamModel "github.com/festy23/teamwork/internal/team/model"
)

// Repository defines the interface for team data access operations.
type Repository interface {
	// Create inserts a new team.
	Create(ctx context.Context, team *teamModel.Team) error

	// GetByID finds team by id.
	GetByID(ctx context.Context, teamID int64) (*teamModel.Team, error)

	// List returns all teams ordered by name.
	List(ctx context.Context) ([]teamModel.Team, error)

	// ListByMember returns the teams userID belongs to, ordered by name.
	ListByMember(ctx context.Context, userID int64) ([]teamModel.Team, error)

	// Update stores name, description and password hash. Leader fields are
	// written only by UpdateLeaderProfile and OrphanTeamsLedBy.
	Update(ctx context.Context, team *teamModel.Team) error

	// Delete removes the team together with its memberships, assignments
	// and their submissions.
	Delete(ctx context.Context, teamID int64) error

	// AddMember inserts a membership row.
	AddMember(ctx context.Context, teamID, userID int64, joinedAt time.Time) error

	// RemoveMember deletes a membership row.
	RemoveMember(ctx context.Context, teamID, userID int64) error

	// IsMember reports whether userID belongs to teamID.
	IsMember(ctx context.Context, teamID, userID int64) (bool, error)

	// ListMembers returns the members of a team ordered by join time.
	ListMembers(ctx context.Context, teamID int64) ([]teamModel.Member, error)

	// RemoveUserFromAllTeams deletes every membership of userID.
	RemoveUserFromAllTeams(ctx context.Context, userID int64) error

	// UpdateLeaderProfile copies username and name into every team led by userID.
	UpdateLeaderProfile(ctx context.Context, userID int64, username, name string) error

	// OrphanTeamsLedBy clears the leader of every team led by userID.
	OrphanTeamsLedBy(ctx context.Context, userID int64) (int64, error)

	// ListOrphanedIDs returns the ids of teams without a leader.
	ListOrphanedIDs(ctx context.Context) ([]int64, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create inserts a new team.
func (r *repository) Create(ctx context.Context, team *teamModel.Team) error {
	if err := r.db.WithContext(ctx).Create(team).Error; err != nil {
		r.logger.Errorw("Create database error", "name", team.Name, "error", err)
		return err
	}
	r.logger.Debugw("Create completed", "team_id", team.ID)
	return nil
}

// GetByID finds team by id.
func (r *repository) GetByID(ctx context.Context, teamID int64) (*teamModel.Team, error) {
	var team teamModel.Team
	err := r.db.WithContext(ctx).Where("id = ?", teamID).First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, teamModel.ErrTeamNotFound
		}
		r.logger.Errorw("GetByID database error", "team_id", teamID, "error", err)
		return nil, err
	}
	return &team, nil
}

// List returns all teams ordered by name.
func (r *repository) List(ctx context.Context) ([]teamModel.Team, error) {
	var teams []teamModel.Team
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&teams).Error; err != nil {
		r.logger.Errorw("List database error", "error", err)
		return nil, err
	}
	if teams == nil {
		teams = []teamModel.Team{}
	}
	return teams, nil
}

// ListByMember returns the teams userID belongs to, ordered by name.
func (r *repository) ListByMember(ctx context.Context, userID int64) ([]teamModel.Team, error) {
	var teams []teamModel.Team
	err := r.db.WithContext(ctx).
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ?", userID).
		Order("teams.name ASC, teams.id ASC").
		Find(&teams).Error
	if err != nil {
		r.logger.Errorw("ListByMember database error", "user_id", userID, "error", err)
		return nil, err
	}
	if teams == nil {
		teams = []teamModel.Team{}
	}
	return teams, nil
}

// Update stores name, description and password hash.
func (r *repository) Update(ctx context.Context, team *teamModel.Team) error {
	result := r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Where("id = ?", team.ID).
		Updates(map[string]interface{}{
			"name":          team.Name,
			"description":   team.Description,
			"password_hash": team.PasswordHash,
			"updated_at":    team.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("Update database error", "team_id", team.ID, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return teamModel.ErrTeamNotFound
	}
	return nil
}

// Delete removes the team together with its memberships, assignments and
// their submissions. Callers run it inside a transaction.
func (r *repository) Delete(ctx context.Context, teamID int64) error {
	db := r.db.WithContext(ctx)

	assignmentIDs := db.Model(&assignmentModel.Assignment{}).Select("id").Where("team_id = ?", teamID)
	if err := db.Where("assignment_id IN (?)", assignmentIDs).Delete(&submissionModel.Submission{}).Error; err != nil {
		r.logger.Errorw("Delete submissions failed", "team_id", teamID, "error", err)
		return err
	}
	if err := db.Where("team_id = ?", teamID).Delete(&assignmentModel.Assignment{}).Error; err != nil {
		r.logger.Errorw("Delete assignments failed", "team_id", teamID, "error", err)
		return err
	}
	if err := db.Where("team_id = ?", teamID).Delete(&teamModel.Membership{}).Error; err != nil {
		r.logger.Errorw("Delete memberships failed", "team_id", teamID, "error", err)
		return err
	}

	result := db.Where("id = ?", teamID).Delete(&teamModel.Team{})
	if result.Error != nil {
		r.logger.Errorw("Delete team failed", "team_id", teamID, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return teamModel.ErrTeamNotFound
	}

	r.logger.Debugw("Delete completed", "team_id", teamID)
	return nil
}

// AddMember inserts a membership row.
func (r *repository) AddMember(ctx context.Context, teamID, userID int64, joinedAt time.Time) error {
	err := r.db.WithContext(ctx).Create(&teamModel.Membership{
		TeamID:   teamID,
		UserID:   userID,
		JoinedAt: joinedAt,
	}).Error
	if err != nil {
		if isDuplicateError(err) {
			return teamModel.ErrAlreadyMember
		}
		r.logger.Errorw("AddMember database error", "team_id", teamID, "user_id", userID, "error", err)
		return err
	}
	return nil
}

// RemoveMember deletes a membership row.
func (r *repository) RemoveMember(ctx context.Context, teamID, userID int64) error {
	result := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&teamModel.Membership{})
	if result.Error != nil {
		r.logger.Errorw("RemoveMember database error", "team_id", teamID, "user_id", userID, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return teamModel.ErrNotMember
	}
	return nil
}

// IsMember reports whether userID belongs to teamID.
func (r *repository) IsMember(ctx context.Context, teamID, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&teamModel.Membership{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("IsMember database error", "team_id", teamID, "user_id", userID, "error", err)
		return false, err
	}
	return count > 0, nil
}

// ListMembers returns the members of a team ordered by join time.
func (r *repository) ListMembers(ctx context.Context, teamID int64) ([]teamModel.Member, error) {
	var members []teamModel.Member
	err := r.db.WithContext(ctx).
		Table("team_members").
		Select("users.id AS user_id, users.username, users.name, team_members.joined_at").
		Joins("JOIN users ON users.id = team_members.user_id").
		Where("team_members.team_id = ?", teamID).
		Order("team_members.joined_at ASC, users.id ASC").
		Scan(&members).Error
	if err != nil {
		r.logger.Errorw("ListMembers database error", "team_id", teamID, "error", err)
		return nil, err
	}
	if members == nil {
		members = []teamModel.Member{}
	}
	return members, nil
}

// RemoveUserFromAllTeams deletes every membership of userID.
func (r *repository) RemoveUserFromAllTeams(ctx context.Context, userID int64) error {
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&teamModel.Membership{}).Error
	if err != nil {
		r.logger.Errorw("RemoveUserFromAllTeams database error", "user_id", userID, "error", err)
	}
	return err
}

// UpdateLeaderProfile copies username and name into every team led by userID.
func (r *repository) UpdateLeaderProfile(ctx context.Context, userID int64, username, name string) error {
	err := r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Where("leader_id = ?", userID).
		Updates(map[string]interface{}{"leader_username": username, "leader_name": name}).Error
	if err != nil {
		r.logger.Errorw("UpdateLeaderProfile database error", "user_id", userID, "error", err)
	}
	return err
}

// OrphanTeamsLedBy clears the leader of every team led by userID.
func (r *repository) OrphanTeamsLedBy(ctx context.Context, userID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Where("leader_id = ?", userID).
		Updates(map[string]interface{}{"leader_id": nil, "leader_username": "", "leader_name": ""})
	if result.Error != nil {
		r.logger.Errorw("OrphanTeamsLedBy database error", "user_id", userID, "error", result.Error)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ListOrphanedIDs returns the ids of teams without a leader.
func (r *repository) ListOrphanedIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Where("leader_id IS NULL").
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		r.logger.Errorw("ListOrphanedIDs database error", "error", err)
		return nil, err
	}
	return ids, nil
}

// isDuplicateError checks if error is a unique or primary key violation.
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
