package schedule

import (
	"context"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// FindSchedulesForDate returns the schedules on the given date assigned to at
// least one of teamIDs, where both the schedule and its parent service are
// live. Results come back in a stable order: service time ascending, then
// schedule id, so "first match" is deterministic for a given data snapshot.
func (s *Service) FindSchedulesForDate(ctx context.Context, teamIDs []string, date time.Time) ([]ScheduleWithService, error) {
	if len(teamIDs) == 0 {
		return nil, ErrNoScheduleFound
	}

	matches, err := s.repo.FindByDateAndTeams(ctx, date, teamIDs)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ErrNoScheduleFound
	}

	return matches, nil
}

func (s *Service) GetWithService(ctx context.Context, scheduleID string) (*ScheduleWithService, error) {
	return s.repo.GetWithService(ctx, scheduleID)
}
