package member

import (
	"context"
	"errors"
	"sort"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetPersonByID(ctx context.Context, personID string) (*Person, error) {
	return s.repo.GetPersonByID(ctx, personID)
}

func (s *Service) GetPersonByUserID(ctx context.Context, userID string) (*Person, error) {
	return s.repo.GetPersonByUserID(ctx, userID)
}

// ResolveActiveTeams returns the deduplicated set of active team ids the
// person may check in under, combining join-table memberships with the
// direct Person.TeamID reference. The direct team is only counted when it
// independently passes the active/not-deleted check. The two sources may
// overlap in value, so dedup is by team id.
func (s *Service) ResolveActiveTeams(ctx context.Context, person *Person) ([]string, error) {
	allTeamIDs, err := s.repo.ListTeamIDsByPerson(ctx, person.ID)
	if err != nil {
		return nil, err
	}
	if len(allTeamIDs) == 0 && person.TeamID == nil {
		return nil, ErrNoTeamMembership
	}

	activeIDs, err := s.repo.ListActiveTeamIDsByPerson(ctx, person.ID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(activeIDs)+1)
	for _, id := range activeIDs {
		seen[id] = struct{}{}
	}

	if person.TeamID != nil {
		team, err := s.repo.GetActiveTeamByID(ctx, *person.TeamID)
		if err != nil && !errors.Is(err, ErrTeamNotFound) {
			return nil, err
		}
		if team != nil {
			seen[team.ID] = struct{}{}
		}
	}

	if len(seen) == 0 {
		return nil, ErrNoActiveTeamMembership
	}

	result := make([]string, 0, len(seen))
	for id := range seen {
		result = append(result, id)
	}
	sort.Strings(result)

	return result, nil
}
