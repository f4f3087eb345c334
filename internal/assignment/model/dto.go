package model

import "strings"

// CreateAssignmentRequest represents the payload to post an assignment.
type CreateAssignmentRequest struct {
	Name        string `json:"name"        binding:"required" validate:"notblank,max=200"`
	Description string `json:"description"                    validate:"max=2000"`
	// Deadline accepts RFC 3339 or 2006-01-02T15:04 (UTC).
	Deadline string `json:"deadline" binding:"required"`
}

// Normalized returns a copy with surrounding whitespace removed.
func (r CreateAssignmentRequest) Normalized() CreateAssignmentRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Deadline = strings.TrimSpace(r.Deadline)
	return r
}

// AssignmentView is an assignment annotated for one viewer.
type AssignmentView struct {
	Assignment
	Submitted      bool `json:"submitted"`
	DeadlinePassed bool `json:"deadline_passed"`
}

// AssignmentResponse wraps a single assignment.
type AssignmentResponse struct {
	Assignment Assignment `json:"assignment"`
}

// AssignmentListResponse wraps the ordered assignment list of a team.
type AssignmentListResponse struct {
	TeamID      int64            `json:"team_id"`
	Assignments []AssignmentView `json:"assignments"`
}
