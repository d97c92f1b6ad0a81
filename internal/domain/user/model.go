package user

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin     = "admin"
	RoleLeader    = "leader"
	RoleVolunteer = "volunteer"
)

type User struct {
	ID         string         `gorm:"type:uuid;primaryKey"`
	Email      string         `gorm:"type:text;not null;uniqueIndex"`
	Name       string         `gorm:"not null"`
	Role       string         `gorm:"type:varchar(16);not null;default:volunteer"`
	CanCheckIn bool           `gorm:"not null;default:false"`
	PersonID   *string        `gorm:"type:uuid;index"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

// AllowedToCheckIn reports whether the user may record attendances:
// administrative role or the explicit per-user capability flag.
func (u *User) AllowedToCheckIn() bool {
	return u.Role == RoleAdmin || u.CanCheckIn
}
