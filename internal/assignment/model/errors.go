package model

import (
	"fmt"

	"github.com/festy23/teamwork/pkg/apperror"
)

var (
	// ErrAssignmentNotFound indicates that the requested assignment does not exist.
	ErrAssignmentNotFound = fmt.Errorf("assignment %w", apperror.ErrNotFound)
	// ErrNotLeader indicates that only the team leader may manage assignments.
	ErrNotLeader = fmt.Errorf("%w: only the team leader may manage assignments", apperror.ErrForbidden)
	// ErrMembersOnly indicates that only members or administrators may list assignments.
	ErrMembersOnly = fmt.Errorf("%w: only team members may view assignments", apperror.ErrForbidden)
	// ErrTeamMismatch indicates that the assignment belongs to a different team.
	ErrTeamMismatch = fmt.Errorf("%w: assignment does not belong to this team", apperror.ErrMismatch)
)
