package checkin

import "context"

type Repository interface {
	GetBySchedulePerson(ctx context.Context, scheduleID, personID string) (*Attendance, error)
	// Create persists the attendance. Implementations must translate the
	// storage-level uniqueness violation on (schedule_id, person_id) into
	// ErrAlreadyCheckedIn, so concurrent redemptions of the same pair resolve
	// to the same outcome as the pre-check.
	Create(ctx context.Context, attendance *Attendance) error
	ListByPerson(ctx context.Context, personID string, limit int) ([]Attendance, error)
}
