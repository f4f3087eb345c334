package model

import "time"

// SubmissionInfo is a submission without its content, joined with the names
// a leader needs to review it.
type SubmissionInfo struct {
	ID             int64     `json:"id"`
	AssignmentID   int64     `json:"assignment_id"`
	AssignmentName string    `json:"assignment_name"`
	UserID         int64     `json:"user_id"`
	Username       string    `json:"username"`
	Name           string    `json:"name"`
	FileName       string    `json:"file_name"`
	StoredName     string    `json:"stored_name"`
	ContentSize    int64     `json:"content_size"`
	IsLate         bool      `json:"is_late"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// SubmissionResponse wraps a single submission.
type SubmissionResponse struct {
	Submission Submission `json:"submission"`
}

// SubmissionListResponse wraps a list of submissions.
type SubmissionListResponse struct {
	Submissions []SubmissionInfo `json:"submissions"`
}

// File is downloadable submission content.
type File struct {
	Name string
	Data []byte
}
