// Package service provides business logic layer for team module.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	assignmentRepository "github.com/festy23/teamwork/internal/assignment/repository"
	"github.com/festy23/teamwork/internal/auth"
	"github.com/festy23/teamwork/internal/metrics"
	teamModel "github.com/festy23/teamwork/internal/team/model"
	"github.com/festy23/teamwork/internal/team/repository"
	userRepository "github.com/festy23/teamwork/internal/user/repository"
	"github.com/festy23/teamwork/pkg/validation"
)

// Service defines the interface for team business logic operations.
type Service interface {
	// CreateTeam forms a team led by actor, who becomes its first member.
	CreateTeam(ctx context.Context, actor auth.Identity, req *teamModel.CreateTeamRequest) (*teamModel.Team, error)

	// JoinTeam adds actor to the team after checking the join password.
	JoinTeam(ctx context.Context, actor auth.Identity, teamID int64, password string) (*teamModel.Team, error)

	// LeaveTeam removes actor from the team. Leaders must dissolve instead.
	LeaveTeam(ctx context.Context, actor auth.Identity, teamID int64) error

	// RemoveMember lets the leader remove another member.
	RemoveMember(ctx context.Context, actor auth.Identity, teamID, memberID int64) error

	// DissolveTeam lets the leader delete the team and everything in it.
	DissolveTeam(ctx context.Context, actor auth.Identity, teamID int64) error

	// UpdateTeam edits name, description and optionally the join password.
	UpdateTeam(ctx context.Context, actor auth.Identity, teamID int64, req *teamModel.UpdateTeamRequest) (*teamModel.Team, error)

	// GetTeam returns a team with its members to members and administrators.
	GetTeam(ctx context.Context, actor auth.Identity, teamID int64) (*teamModel.TeamDetails, error)

	// ListTeams returns every team.
	ListTeams(ctx context.Context) ([]teamModel.Team, error)

	// ListMembers returns the member list to the leader or an administrator.
	ListMembers(ctx context.Context, actor auth.Identity, teamID int64) ([]teamModel.Member, error)

	// Dashboard returns actor's teams annotated with pending work.
	Dashboard(ctx context.Context, actor auth.Identity) (*teamModel.DashboardResponse, error)

	// AdminDeleteTeam deletes any team.
	AdminDeleteTeam(ctx context.Context, actor auth.Identity, teamID int64) error

	// CleanupOrphanTeams deletes every team without a leader.
	CleanupOrphanTeams(ctx context.Context, actor auth.Identity) (int, error)
}

// AttentionChecker reports whether a member still owes work to a team.
type AttentionChecker interface {
	HasUnsubmittedFutureAssignment(ctx context.Context, teamID, userID int64) (bool, error)
}

// Deps are the collaborators of the team service.
type Deps struct {
	Repo        repository.Repository
	Users       userRepository.Repository
	Assignments assignmentRepository.Repository
	Attention   AttentionChecker
	Hasher      auth.PasswordHasher
	DB          *gorm.DB
	Logger      *zap.SugaredLogger
	Metrics     *metrics.Metrics
}

type service struct {
	repo        repository.Repository
	users       userRepository.Repository
	assignments assignmentRepository.Repository
	attention   AttentionChecker
	hasher      auth.PasswordHasher
	db          *gorm.DB
	logger      *zap.SugaredLogger
	metrics     *metrics.Metrics
	now         func() time.Time
}

// New creates a new team service instance.
func New(d Deps) Service {
	return &service{
		repo:        d.Repo,
		users:       d.Users,
		assignments: d.Assignments,
		attention:   d.Attention,
		hasher:      d.Hasher,
		db:          d.DB,
		logger:      d.Logger,
		metrics:     d.Metrics,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreateTeam forms a team led by actor in a transaction.
func (s *service) CreateTeam(ctx context.Context, actor auth.Identity, req *teamModel.CreateTeamRequest) (*teamModel.Team, error) {
	if err := actor.RequireUser(); err != nil {
		return nil, err
	}
	in := req.Normalized()
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	creator, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	team := &teamModel.Team{
		Name:           in.Name,
		Description:    in.Description,
		PasswordHash:   hash,
		LeaderID:       &creator.ID,
		LeaderUsername: creator.Username,
		LeaderName:     creator.Name,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		if err := txRepo.Create(ctx, team); err != nil {
			return err
		}
		return txRepo.AddMember(ctx, team.ID, creator.ID, now)
	})
	if err != nil {
		s.logger.Errorw("CreateTeam failed", "user_id", actor.UserID, "error", err)
		return nil, err
	}

	s.metrics.TeamEvent(metrics.TeamCreated)
	s.logger.Infow("team created", "team_id", team.ID, "leader_id", creator.ID)
	return team, nil
}

// JoinTeam adds actor to the team after checking the join password.
func (s *service) JoinTeam(ctx context.Context, actor auth.Identity, teamID int64, password string) (*teamModel.Team, error) {
	if err := actor.RequireUser(); err != nil {
		return nil, err
	}

	team, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(team.PasswordHash, password) {
		s.logger.Debugw("JoinTeam wrong password", "team_id", teamID, "user_id", actor.UserID)
		return nil, teamModel.ErrWrongPassword
	}

	member, err := s.repo.IsMember(ctx, teamID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if member {
		return nil, teamModel.ErrAlreadyMember
	}

	if err := s.repo.AddMember(ctx, teamID, actor.UserID, s.now()); err != nil {
		return nil, err
	}

	s.metrics.TeamEvent(metrics.TeamJoined)
	s.logger.Infow("team joined", "team_id", teamID, "user_id", actor.UserID)
	return team, nil
}

// LeaveTeam removes actor from the team.
func (s *service) LeaveTeam(ctx context.Context, actor auth.Identity, teamID int64) error {
	if err := actor.RequireUser(); err != nil {
		return err
	}

	team, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team.IsLedBy(actor.UserID) {
		return teamModel.ErrLeaderCannotLeave
	}

	if err := s.repo.RemoveMember(ctx, teamID, actor.UserID); err != nil {
		return err
	}

	s.metrics.TeamEvent(metrics.TeamLeft)
	s.logger.Infow("team left", "team_id", teamID, "user_id", actor.UserID)
	return nil
}

// RemoveMember lets the leader remove another member.
func (s *service) RemoveMember(ctx context.Context, actor auth.Identity, teamID, memberID int64) error {
	if err := actor.RequireUser(); err != nil {
		return err
	}

	team, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if !team.IsLedBy(actor.UserID) {
		return teamModel.ErrNotLeader
	}
	if team.IsLedBy(memberID) {
		return teamModel.ErrCannotRemoveLeader
	}

	if err := s.repo.RemoveMember(ctx, teamID, memberID); err != nil {
		return err
	}

	s.metrics.TeamEvent(metrics.TeamMemberRemoved)
	s.logger.Infow("team member removed", "team_id", teamID, "user_id", memberID, "by", actor.UserID)
	return nil
}

// DissolveTeam deletes the team, its memberships, assignments and
// submissions in one transaction.
func (s *service) DissolveTeam(ctx context.Context, actor auth.Identity, teamID int64) error {
	if err := actor.RequireUser(); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		team, err := txRepo.GetByID(ctx, teamID)
		if err != nil {
			return err
		}
		if !team.IsLedBy(actor.UserID) {
			return teamModel.ErrNotLeader
		}
		return txRepo.Delete(ctx, teamID)
	})
	if err != nil {
		return err
	}

	s.metrics.TeamEvent(metrics.TeamDissolved)
	s.logger.Infow("team dissolved", "team_id", teamID, "by", actor.UserID)
	return nil
}

// UpdateTeam edits the team. A blank password keeps the current one.
func (s *service) UpdateTeam(ctx context.Context, actor auth.Identity, teamID int64, req *teamModel.UpdateTeamRequest) (*teamModel.Team, error) {
	if err := actor.RequireUser(); err != nil {
		return nil, err
	}
	in := req.Normalized()
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	var hash string
	if in.Password != "" {
		var err error
		if hash, err = s.hasher.Hash(in.Password); err != nil {
			return nil, err
		}
	}

	var team *teamModel.Team
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		current, err := txRepo.GetByID(ctx, teamID)
		if err != nil {
			return err
		}
		if !current.IsLedBy(actor.UserID) && !actor.IsAdmin() {
			return teamModel.ErrNotLeaderOrAdmin
		}

		current.Name = in.Name
		current.Description = in.Description
		if hash != "" {
			current.PasswordHash = hash
		}
		current.UpdatedAt = s.now()
		if err := txRepo.Update(ctx, current); err != nil {
			return err
		}
		team, err = txRepo.GetByID(ctx, teamID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("team updated", "team_id", teamID, "by", actor.UserID)
	return team, nil
}

// GetTeam returns a team with its members.
func (s *service) GetTeam(ctx context.Context, actor auth.Identity, teamID int64) (*teamModel.TeamDetails, error) {
	if err := actor.RequireUser(); err != nil {
		return nil, err
	}

	team, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		member, err := s.repo.IsMember(ctx, teamID, actor.UserID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, teamModel.ErrMembersOnly
		}
	}

	members, err := s.members(ctx, team)
	if err != nil {
		return nil, err
	}
	return &teamModel.TeamDetails{Team: *team, Members: members}, nil
}

// ListTeams returns every team.
func (s *service) ListTeams(ctx context.Context) ([]teamModel.Team, error) {
	return s.repo.List(ctx)
}

// ListMembers returns the member list to the leader or an administrator.
func (s *service) ListMembers(ctx context.Context, actor auth.Identity, teamID int64) ([]teamModel.Member, error) {
	if err := actor.RequireUser(); err != nil {
		return nil, err
	}

	team, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !team.IsLedBy(actor.UserID) && !actor.IsAdmin() {
		return nil, teamModel.ErrNotLeaderOrAdmin
	}
	return s.members(ctx, team)
}

func (s *service) members(ctx context.Context, team *teamModel.Team) ([]teamModel.Member, error) {
	members, err := s.repo.ListMembers(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	for i := range members {
		members[i].IsLeader = team.IsLedBy(members[i].UserID)
	}
	return members, nil
}

// Dashboard returns actor's teams annotated with pending work. Nothing is
// cached: every call recomputes against the current time.
func (s *service) Dashboard(ctx context.Context, actor auth.Identity) (*teamModel.DashboardResponse, error) {
	if err := actor.RequireUser(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	teams, err := s.repo.ListByMember(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	entries := make([]teamModel.DashboardTeam, 0, len(teams))
	for _, team := range teams {
		pending, err := s.attention.HasUnsubmittedFutureAssignment(ctx, team.ID, user.ID)
		if err != nil {
			return nil, err
		}
		hours, err := s.hoursUntilNextDeadline(ctx, team.ID, now)
		if err != nil {
			return nil, err
		}
		entries = append(entries, teamModel.DashboardTeam{
			Team:                     team,
			IsLeader:                 team.IsLedBy(user.ID),
			HasUnsubmittedAssignment: pending,
			HoursUntilDeadline:       hours,
		})
	}

	return &teamModel.DashboardResponse{
		UserID:   user.ID,
		Username: user.Username,
		Name:     user.Name,
		IsAdmin:  user.IsAdmin(),
		Teams:    entries,
	}, nil
}

// hoursUntilNextDeadline returns whole hours until the nearest deadline after
// now, or -1 when none lies ahead.
func (s *service) hoursUntilNextDeadline(ctx context.Context, teamID int64, now time.Time) (int, error) {
	assignments, err := s.assignments.ListByTeam(ctx, teamID)
	if err != nil {
		return 0, err
	}
	for _, a := range assignments {
		if a.Deadline.After(now) {
			return int(a.Deadline.Sub(now) / time.Hour), nil
		}
	}
	return -1, nil
}

// AdminDeleteTeam deletes any team.
func (s *service) AdminDeleteTeam(ctx context.Context, actor auth.Identity, teamID int64) error {
	if !actor.IsAdmin() {
		return teamModel.ErrAdminRequired
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return repository.New(tx, s.logger).Delete(ctx, teamID)
	})
	if err != nil {
		return err
	}

	s.metrics.TeamEvent(metrics.TeamDissolved)
	s.logger.Infow("team deleted by administrator", "team_id", teamID, "by", actor.UserID)
	return nil
}

// CleanupOrphanTeams deletes every team without a leader in one transaction
// and returns how many were removed.
func (s *service) CleanupOrphanTeams(ctx context.Context, actor auth.Identity) (int, error) {
	if !actor.IsAdmin() {
		return 0, teamModel.ErrAdminRequired
	}

	var removed int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		ids, err := txRepo.ListOrphanedIDs(ctx)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if err := txRepo.Delete(ctx, id); err != nil {
				return err
			}
		}
		removed = len(ids)
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.metrics.AddTeamEvents(metrics.TeamOrphanRemoved, removed)
	s.logger.Infow("orphaned teams removed", "count", removed, "by", actor.UserID)
	return removed, nil
}
