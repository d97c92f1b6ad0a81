package schedule

import (
	"time"

	"gorm.io/gorm"
)

// ChurchService is the recurring meeting definition. Its Time field holds the
// scheduled time-of-day as "HH:MM:SS".
type ChurchService struct {
	ID        string         `gorm:"type:uuid;primaryKey"`
	ChurchID  string         `gorm:"type:uuid;index;not null"`
	Name      string         `gorm:"not null"`
	Time      string         `gorm:"type:varchar(8);not null"`
	IsActive  bool           `gorm:"not null;default:true"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ChurchService) TableName() string {
	return "church_services"
}

// Schedule is a concrete calendar-date occurrence of a ChurchService.
type Schedule struct {
	ID        string         `gorm:"type:uuid;primaryKey"`
	ServiceID string         `gorm:"type:uuid;index;not null"`
	Date      time.Time      `gorm:"type:date;not null;index"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type ScheduleTeam struct {
	ScheduleID string    `gorm:"type:uuid;primaryKey"`
	TeamID     string    `gorm:"type:uuid;primaryKey"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`

	Schedule Schedule `gorm:"foreignKey:ScheduleID;references:ID;constraint:OnDelete:CASCADE"`
}

type ScheduleWithService struct {
	Schedule Schedule
	Service  ChurchService
}

// DateString renders the schedule date as an ISO date, the representation the
// QR payload carries.
func (s Schedule) DateString() string {
	return s.Date.Format("2006-01-02")
}
