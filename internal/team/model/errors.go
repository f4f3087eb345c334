package model

import (
	"fmt"

	"github.com/festy23/teamwork/pkg/apperror"
)

var (
	// ErrTeamNotFound indicates that the requested team does not exist.
	ErrTeamNotFound = fmt.Errorf("team %w", apperror.ErrNotFound)
	// ErrNotMember indicates that the user does not belong to the team.
	ErrNotMember = fmt.Errorf("team member %w", apperror.ErrNotFound)
	// ErrWrongPassword indicates that the join password does not match.
	ErrWrongPassword = fmt.Errorf("%w: wrong team password", apperror.ErrInvalidCredentials)
	// ErrAlreadyMember indicates that the user already belongs to the team.
	ErrAlreadyMember = fmt.Errorf("%w of this team", apperror.ErrAlreadyMember)
	// ErrNotLeader indicates that only the team leader may perform the action.
	ErrNotLeader = fmt.Errorf("%w: only the team leader may do this", apperror.ErrForbidden)
	// ErrNotLeaderOrAdmin indicates that the action needs the leader or an administrator.
	ErrNotLeaderOrAdmin = fmt.Errorf("%w: only the team leader or an administrator may do this", apperror.ErrForbidden)
	// ErrLeaderCannotLeave indicates that a leader tried to leave instead of dissolving.
	ErrLeaderCannotLeave = fmt.Errorf("%w: the leader must dissolve the team instead of leaving", apperror.ErrForbidden)
	// ErrCannotRemoveLeader indicates an attempt to remove the leader from the member list.
	ErrCannotRemoveLeader = fmt.Errorf("%w: the leader cannot be removed", apperror.ErrForbidden)
	// ErrMembersOnly indicates that only members or administrators may view the team.
	ErrMembersOnly = fmt.Errorf("%w: only members may view this team", apperror.ErrForbidden)
	// ErrAdminRequired indicates that the action needs an administrator.
	ErrAdminRequired = fmt.Errorf("%w: administrator role required", apperror.ErrForbidden)
)
