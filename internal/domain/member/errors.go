package member

import "errors"

var (
	ErrPersonNotFound         = errors.New("person not found")
	ErrTeamNotFound           = errors.New("team not found")
	ErrNoTeamMembership       = errors.New("person has no team membership")
	ErrNoActiveTeamMembership = errors.New("person has no active team membership")
)
