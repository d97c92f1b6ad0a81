package checkin

import (
	"context"
	"errors"

	checkindomain "church-checkin-go/internal/domain/checkin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetBySchedulePerson(ctx context.Context, scheduleID, personID string) (*checkindomain.Attendance, error) {
	var attendance checkindomain.Attendance
	if err := r.db.WithContext(ctx).
		Where("schedule_id = ? AND person_id = ?", scheduleID, personID).
		First(&attendance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, checkindomain.ErrAttendanceNotFound
		}
		return nil, err
	}
	return &attendance, nil
}

// Create inserts the attendance. The composite unique index on
// (schedule_id, person_id) is the final arbiter under concurrent redemption;
// its violation is reported as ErrAlreadyCheckedIn.
func (r *PostgresRepository) Create(ctx context.Context, attendance *checkindomain.Attendance) error {
	err := r.db.WithContext(ctx).Create(attendance).Error
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return checkindomain.ErrAlreadyCheckedIn
	}
	return err
}

func (r *PostgresRepository) ListByPerson(ctx context.Context, personID string, limit int) ([]checkindomain.Attendance, error) {
	query := r.db.WithContext(ctx).
		Where("person_id = ?", personID).
		Order("checked_in_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var attendances []checkindomain.Attendance
	if err := query.Find(&attendances).Error; err != nil {
		return nil, err
	}
	return attendances, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
