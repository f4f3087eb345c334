package model

import (
	"fmt"

	"github.com/festy23/teamwork/pkg/apperror"
)

var (
	// ErrSubmissionNotFound indicates that the requested submission does not exist.
	ErrSubmissionNotFound = fmt.Errorf("submission %w", apperror.ErrNotFound)
	// ErrEmptyFile indicates an upload without content.
	ErrEmptyFile = fmt.Errorf("%w: the uploaded file has no content", apperror.ErrEmptyFile)
	// ErrFileTooLarge indicates an upload above the configured limit.
	ErrFileTooLarge = fmt.Errorf("%w: the uploaded file exceeds the size limit", apperror.ErrTooLarge)
	// ErrNotTeamMember indicates a submission to a team the user does not belong to.
	ErrNotTeamMember = fmt.Errorf("%w: only team members may submit", apperror.ErrForbidden)
	// ErrNotLeader indicates that only the team leader may view the submissions.
	ErrNotLeader = fmt.Errorf("%w: only the team leader may do this", apperror.ErrForbidden)
	// ErrAssignmentMismatch indicates that the assignment belongs to a different team.
	ErrAssignmentMismatch = fmt.Errorf("%w: assignment does not belong to this team", apperror.ErrMismatch)
	// ErrDownloadDenied indicates that the identity may not read the file.
	ErrDownloadDenied = fmt.Errorf("%w: only the submitter, the team leader or an administrator may download", apperror.ErrForbidden)
)
