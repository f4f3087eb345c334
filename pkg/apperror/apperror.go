// Package apperror defines the failure kinds shared by every module.
//
// Module packages declare their own sentinel errors by wrapping one of these
// kinds, for example:
//
//	var ErrTeamNotFound = fmt.Errorf("team %w", apperror.ErrNotFound)
//
// so callers can match either the precise sentinel or the general kind.
package apperror

import "errors"

var (
	// ErrNotFound indicates that a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden indicates that an authorization predicate failed.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthorized indicates that the request carries no valid identity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials indicates a password mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAlreadyMember indicates that the user already belongs to the team.
	ErrAlreadyMember = errors.New("already a member")
	// ErrDuplicateUsername indicates that the username is taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrEmptyFile indicates an upload without payload.
	ErrEmptyFile = errors.New("empty file")
	// ErrMismatch indicates a cross-entity inconsistency such as an assignment
	// that does not belong to the addressed team.
	ErrMismatch = errors.New("mismatch")
	// ErrInvalidInput indicates a request that failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrTooLarge indicates an upload above the configured size limit.
	ErrTooLarge = errors.New("payload too large")
)

// Kind describes how a failure kind is presented to API clients.
type Kind struct {
	Err    error
	Code   string
	Status int
}

// kinds is ordered: the first matching kind wins.
var kinds = []Kind{
	{Err: ErrNotFound, Code: "NOT_FOUND", Status: 404},
	{Err: ErrForbidden, Code: "FORBIDDEN", Status: 403},
	{Err: ErrUnauthorized, Code: "UNAUTHORIZED", Status: 401},
	{Err: ErrInvalidCredentials, Code: "INVALID_CREDENTIALS", Status: 401},
	{Err: ErrAlreadyMember, Code: "ALREADY_MEMBER", Status: 409},
	{Err: ErrDuplicateUsername, Code: "DUPLICATE_USERNAME", Status: 409},
	{Err: ErrEmptyFile, Code: "EMPTY_FILE", Status: 400},
	{Err: ErrMismatch, Code: "MISMATCH", Status: 400},
	{Err: ErrInvalidInput, Code: "INVALID_REQUEST", Status: 400},
	{Err: ErrTooLarge, Code: "PAYLOAD_TOO_LARGE", Status: 413},
}

// Classify returns the kind of err. The second result is false when err does
// not wrap any known kind.
func Classify(err error) (Kind, bool) {
	if err == nil {
		return Kind{}, false
	}
	for _, k := range kinds {
		if errors.Is(err, k.Err) {
			return k, true
		}
	}
	return Kind{}, false
}
