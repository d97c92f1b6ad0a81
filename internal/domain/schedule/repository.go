package schedule

import (
	"context"
	"time"
)

type Repository interface {
	FindByDateAndTeams(ctx context.Context, date time.Time, teamIDs []string) ([]ScheduleWithService, error)
	GetWithService(ctx context.Context, scheduleID string) (*ScheduleWithService, error)
}
