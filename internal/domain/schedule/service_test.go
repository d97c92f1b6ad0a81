package schedule

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

type fakeScheduleRepo struct {
	schedules map[string]*ScheduleWithService
	teams     map[string][]string
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		schedules: make(map[string]*ScheduleWithService),
		teams:     make(map[string][]string),
	}
}

func (r *fakeScheduleRepo) add(sws ScheduleWithService, teamIDs ...string) {
	r.schedules[sws.Schedule.ID] = &sws
	r.teams[sws.Schedule.ID] = teamIDs
}

func (r *fakeScheduleRepo) FindByDateAndTeams(ctx context.Context, date time.Time, teamIDs []string) ([]ScheduleWithService, error) {
	wanted := make(map[string]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		wanted[id] = struct{}{}
	}

	result := make([]ScheduleWithService, 0)
	for scheduleID, sws := range r.schedules {
		if !sameDate(sws.Schedule.Date, date) {
			continue
		}
		if !sws.Service.IsActive {
			continue
		}
		for _, teamID := range r.teams[scheduleID] {
			if _, ok := wanted[teamID]; ok {
				result = append(result, *sws)
				break
			}
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Service.Time != result[j].Service.Time {
			return result[i].Service.Time < result[j].Service.Time
		}
		return result[i].Schedule.ID < result[j].Schedule.ID
	})

	return result, nil
}

func (r *fakeScheduleRepo) GetWithService(ctx context.Context, scheduleID string) (*ScheduleWithService, error) {
	sws, ok := r.schedules[scheduleID]
	if !ok || !sws.Service.IsActive {
		return nil, ErrScheduleNotFound
	}
	return sws, nil
}

func sameDate(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func date(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return parsed
}

func TestFindSchedulesForDateMatchesTeam(t *testing.T) {
	repo := newFakeScheduleRepo()
	repo.add(ScheduleWithService{
		Schedule: Schedule{ID: "sch-1", ServiceID: "svc-1", Date: date(t, "2024-03-10")},
		Service:  ChurchService{ID: "svc-1", Name: "Sunday Morning", Time: "09:00:00", IsActive: true},
	}, "t-1")

	svc := NewService(repo)
	matches, err := svc.FindSchedulesForDate(context.Background(), []string{"t-1"}, date(t, "2024-03-10"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(matches) != 1 || matches[0].Schedule.ID != "sch-1" {
		t.Fatalf("expected sch-1, got %+v", matches)
	}
}

func TestFindSchedulesForDateNoTeamsOverlap(t *testing.T) {
	repo := newFakeScheduleRepo()
	repo.add(ScheduleWithService{
		Schedule: Schedule{ID: "sch-1", ServiceID: "svc-1", Date: date(t, "2024-03-10")},
		Service:  ChurchService{ID: "svc-1", Time: "09:00:00", IsActive: true},
	}, "t-other")

	svc := NewService(repo)
	_, err := svc.FindSchedulesForDate(context.Background(), []string{"t-1"}, date(t, "2024-03-10"))
	if !errors.Is(err, ErrNoScheduleFound) {
		t.Fatalf("expected ErrNoScheduleFound, got %v", err)
	}
}

func TestFindSchedulesForDateInactiveService(t *testing.T) {
	repo := newFakeScheduleRepo()
	repo.add(ScheduleWithService{
		Schedule: Schedule{ID: "sch-1", ServiceID: "svc-1", Date: date(t, "2024-03-10")},
		Service:  ChurchService{ID: "svc-1", Time: "09:00:00", IsActive: false},
	}, "t-1")

	svc := NewService(repo)
	_, err := svc.FindSchedulesForDate(context.Background(), []string{"t-1"}, date(t, "2024-03-10"))
	if !errors.Is(err, ErrNoScheduleFound) {
		t.Fatalf("expected ErrNoScheduleFound, got %v", err)
	}
}

func TestFindSchedulesForDateEmptyTeamSet(t *testing.T) {
	svc := NewService(newFakeScheduleRepo())
	_, err := svc.FindSchedulesForDate(context.Background(), nil, date(t, "2024-03-10"))
	if !errors.Is(err, ErrNoScheduleFound) {
		t.Fatalf("expected ErrNoScheduleFound, got %v", err)
	}
}

func TestFindSchedulesForDateStableOrdering(t *testing.T) {
	repo := newFakeScheduleRepo()
	repo.add(ScheduleWithService{
		Schedule: Schedule{ID: "sch-b", ServiceID: "svc-2", Date: date(t, "2024-03-10")},
		Service:  ChurchService{ID: "svc-2", Name: "Evening", Time: "19:00:00", IsActive: true},
	}, "t-1")
	repo.add(ScheduleWithService{
		Schedule: Schedule{ID: "sch-a", ServiceID: "svc-1", Date: date(t, "2024-03-10")},
		Service:  ChurchService{ID: "svc-1", Name: "Morning", Time: "09:00:00", IsActive: true},
	}, "t-1")

	svc := NewService(repo)
	matches, err := svc.FindSchedulesForDate(context.Background(), []string{"t-1"}, date(t, "2024-03-10"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Schedule.ID != "sch-a" || matches[1].Schedule.ID != "sch-b" {
		t.Fatalf("expected earliest service first, got %s then %s", matches[0].Schedule.ID, matches[1].Schedule.ID)
	}
}
