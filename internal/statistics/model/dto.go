// Package model provides data transfer objects for statistics module.
package model

// MemberStatistics summarizes the submissions of one team member.
type MemberStatistics struct {
	UserID          int64  `json:"user_id"`
	Username        string `json:"username"`
	Name            string `json:"name"`
	SubmissionCount int    `json:"submission_count"`
	LateCount       int    `json:"late_count"`
}

// TeamStatistics summarizes one team.
type TeamStatistics struct {
	TeamID          int64              `json:"team_id"`
	TeamName        string             `json:"team_name"`
	AssignmentCount int                `json:"assignment_count"`
	MemberCount     int                `json:"member_count"`
	// CompletionRate is submissions divided by members times assignments.
	CompletionRate float64            `json:"completion_rate"`
	Members        []MemberStatistics `json:"members"`
}

// TeamStatisticsResponse represents response for team statistics.
type TeamStatisticsResponse struct {
	Statistics TeamStatistics `json:"statistics"`
}

// GlobalStatistics holds application wide counters.
type GlobalStatistics struct {
	Users                 int     `json:"users"`
	Teams                 int     `json:"teams"`
	OrphanTeams           int     `json:"orphan_teams"`
	Assignments           int     `json:"assignments"`
	Submissions           int     `json:"submissions"`
	LateSubmissions       int     `json:"late_submissions"`
	Memberships           int     `json:"memberships"`
	AverageMembersPerTeam float64 `json:"average_members_per_team"`
}

// GlobalStatisticsResponse represents response for global statistics.
type GlobalStatisticsResponse struct {
	Statistics GlobalStatistics `json:"statistics"`
}
