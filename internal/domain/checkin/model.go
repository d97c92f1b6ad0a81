package checkin

import "time"

const (
	MethodQRCode = "qr_code"
	MethodManual = "manual"
)

// Attendance is the durable record of a completed check-in. The composite
// unique index on (schedule_id, person_id) is the final arbiter for
// at-most-once recording; the application-level pre-check only exists to give
// a fast rejection on the non-racing path.
type Attendance struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	ScheduleID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_attendances_schedule_person" json:"scheduleId"`
	PersonID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_attendances_schedule_person" json:"personId"`
	Method        string    `gorm:"type:varchar(16);not null" json:"method"`
	CheckedInByID string    `gorm:"type:uuid;not null" json:"checkedInById"`
	CheckedInAt   time.Time `gorm:"not null" json:"checkedInAt"`
	QRPayload     *string   `gorm:"type:text" json:"-"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
