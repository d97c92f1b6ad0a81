package member

import "context"

type Repository interface {
	GetPersonByID(ctx context.Context, personID string) (*Person, error)
	GetPersonByUserID(ctx context.Context, userID string) (*Person, error)
	ListTeamIDsByPerson(ctx context.Context, personID string) ([]string, error)
	ListActiveTeamIDsByPerson(ctx context.Context, personID string) ([]string, error)
	GetActiveTeamByID(ctx context.Context, teamID string) (*Team, error)
}
