package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrNotOwner is returned when the acting user does not own the team a
	// mutation targets. Ownership is checked before any state inspection, so
	// a non-owner cannot learn whether a team is archived or full.
	ErrNotOwner = errors.New("team is not owned by the acting user")

	// ErrTeamArchived is returned when a roster mutation or rename targets a
	// team created before the configured season start.
	ErrTeamArchived = errors.New("team belongs to a past season")

	// ErrDuplicateActiveTeam is returned when a user who already has an
	// active team for the current season tries to create another.
	ErrDuplicateActiveTeam = errors.New("user already has an active team this season")
)
