package model

import (
	"strings"
	"time"
)

// CreateTeamRequest represents the payload to form a team.
type CreateTeamRequest struct {
	Name        string `json:"name"        binding:"required" validate:"notblank,max=100"`
	Description string `json:"description" binding:"required" validate:"notblank,max=1000"`
	Password    string `json:"password"    binding:"required" validate:"required,min=4,max=72"`
}

// Normalized returns a copy with the name and description trimmed.
func (r CreateTeamRequest) Normalized() CreateTeamRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	return r
}

// UpdateTeamRequest represents an edit of a team. A blank Password keeps the
// current join password.
type UpdateTeamRequest struct {
	Name        string `json:"name"        binding:"required" validate:"notblank,max=100"`
	Description string `json:"description" binding:"required" validate:"notblank,max=1000"`
	Password    string `json:"password"                       validate:"omitempty,min=4,max=72"`
}

// Normalized trims the name and description. A whitespace-only password
// becomes empty.
func (r UpdateTeamRequest) Normalized() UpdateTeamRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	if strings.TrimSpace(r.Password) == "" {
		r.Password = ""
	}
	return r
}

// JoinTeamRequest carries the join password.
type JoinTeamRequest struct {
	Password string `json:"password" binding:"required"`
}

// Member is a user as seen from a team's member list.
type Member struct {
	UserID   int64     `json:"user_id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	IsLeader bool      `json:"is_leader"`
	JoinedAt time.Time `json:"joined_at"`
}

// TeamDetails is a team with its members.
type TeamDetails struct {
	Team    Team     `json:"team"`
	Members []Member `json:"members"`
}

// DashboardTeam is one entry of a user's team overview.
type DashboardTeam struct {
	Team                     Team `json:"team"`
	IsLeader                 bool `json:"is_leader"`
	HasUnsubmittedAssignment bool `json:"has_unsubmitted_assignment"`
	// HoursUntilDeadline counts whole hours until the nearest future deadline,
	// or -1 when no deadline lies ahead.
	HoursUntilDeadline int `json:"hours_until_deadline"`
}

// TeamResponse wraps a single team.
type TeamResponse struct {
	Team Team `json:"team"`
}

// TeamListResponse wraps a list of teams.
type TeamListResponse struct {
	Teams []Team `json:"teams"`
}

// MemberListResponse wraps a member list.
type MemberListResponse struct {
	TeamID  int64    `json:"team_id"`
	Members []Member `json:"members"`
}

// DashboardResponse is the signed-in user's overview.
type DashboardResponse struct {
	UserID   int64           `json:"user_id"`
	Username string          `json:"username"`
	Name     string          `json:"name"`
	IsAdmin  bool            `json:"is_admin"`
	Teams    []DashboardTeam `json:"teams"`
}

// CleanupResponse reports how many orphaned teams were removed.
type CleanupResponse struct {
	Removed int `json:"removed"`
}
