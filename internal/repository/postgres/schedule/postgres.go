package schedule

import (
	"context"
	"errors"
	"time"

	scheduledomain "church-checkin-go/internal/domain/schedule"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scheduleServiceRow struct {
	scheduledomain.Schedule
	ServiceName     string `gorm:"column:service_name"`
	ServiceChurchID string `gorm:"column:service_church_id"`
	ServiceTime     string `gorm:"column:service_time"`
	ServiceIsActive bool   `gorm:"column:service_is_active"`
}

func (row scheduleServiceRow) toDomain() scheduledomain.ScheduleWithService {
	return scheduledomain.ScheduleWithService{
		Schedule: row.Schedule,
		Service: scheduledomain.ChurchService{
			ID:       row.ServiceID,
			ChurchID: row.ServiceChurchID,
			Name:     row.ServiceName,
			Time:     row.ServiceTime,
			IsActive: row.ServiceIsActive,
		},
	}
}

const scheduleServiceSelect = `
	schedules.*,
	church_services.name as service_name,
	church_services.church_id as service_church_id,
	church_services.time as service_time,
	church_services.is_active as service_is_active`

func (r *PostgresRepository) FindByDateAndTeams(ctx context.Context, date time.Time, teamIDs []string) ([]scheduledomain.ScheduleWithService, error) {
	if len(teamIDs) == 0 {
		return []scheduledomain.ScheduleWithService{}, nil
	}

	var rows []scheduleServiceRow
	err := r.db.WithContext(ctx).
		Model(&scheduledomain.Schedule{}).
		Select(scheduleServiceSelect).
		Joins("join church_services on church_services.id = schedules.service_id").
		Joins("join schedule_teams on schedule_teams.schedule_id = schedules.id").
		Where("schedules.date = ?", date.Format("2006-01-02")).
		Where("schedule_teams.team_id IN ?", teamIDs).
		Where("church_services.is_active = ?", true).
		Where("church_services.deleted_at IS NULL").
		Group("schedules.id, church_services.id").
		Order("church_services.time asc, schedules.id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]scheduledomain.ScheduleWithService, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toDomain())
	}
	return result, nil
}

func (r *PostgresRepository) GetWithService(ctx context.Context, scheduleID string) (*scheduledomain.ScheduleWithService, error) {
	var row scheduleServiceRow
	err := r.db.WithContext(ctx).
		Model(&scheduledomain.Schedule{}).
		Select(scheduleServiceSelect).
		Joins("join church_services on church_services.id = schedules.service_id").
		Where("schedules.id = ?", scheduleID).
		Where("church_services.is_active = ?", true).
		Where("church_services.deleted_at IS NULL").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, scheduledomain.ErrScheduleNotFound
		}
		return nil, err
	}

	sws := row.toDomain()
	return &sws, nil
}
