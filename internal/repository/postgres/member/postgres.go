package member

import (
	"context"
	"errors"

	memberdomain "church-checkin-go/internal/domain/member"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetPersonByID(ctx context.Context, personID string) (*memberdomain.Person, error) {
	var person memberdomain.Person
	if err := r.db.WithContext(ctx).
		Where("id = ?", personID).
		First(&person).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, memberdomain.ErrPersonNotFound
		}
		return nil, err
	}
	return &person, nil
}

func (r *PostgresRepository) GetPersonByUserID(ctx context.Context, userID string) (*memberdomain.Person, error) {
	var person memberdomain.Person
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&person).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, memberdomain.ErrPersonNotFound
		}
		return nil, err
	}
	return &person, nil
}

func (r *PostgresRepository) ListTeamIDsByPerson(ctx context.Context, personID string) ([]string, error) {
	var teamIDs []string
	if err := r.db.WithContext(ctx).
		Model(&memberdomain.TeamMember{}).
		Where("person_id = ?", personID).
		Pluck("team_id", &teamIDs).Error; err != nil {
		return nil, err
	}
	return teamIDs, nil
}

func (r *PostgresRepository) ListActiveTeamIDsByPerson(ctx context.Context, personID string) ([]string, error) {
	var teamIDs []string
	if err := r.db.WithContext(ctx).
		Model(&memberdomain.TeamMember{}).
		Select("team_members.team_id").
		Joins("join teams on teams.id = team_members.team_id").
		Where("team_members.person_id = ?", personID).
		Where("teams.is_active = ?", true).
		Where("teams.deleted_at IS NULL").
		Pluck("team_members.team_id", &teamIDs).Error; err != nil {
		return nil, err
	}
	return teamIDs, nil
}

func (r *PostgresRepository) GetActiveTeamByID(ctx context.Context, teamID string) (*memberdomain.Team, error) {
	var team memberdomain.Team
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", teamID, true).
		First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, memberdomain.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}
