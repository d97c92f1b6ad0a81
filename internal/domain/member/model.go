package member

import (
	"time"

	"gorm.io/gorm"
)

type Person struct {
	ID        string         `gorm:"type:uuid;primaryKey"`
	ChurchID  string         `gorm:"type:uuid;index;not null"`
	UserID    *string        `gorm:"type:uuid;uniqueIndex"`
	TeamID    *string        `gorm:"type:uuid;index"`
	Name      string         `gorm:"not null"`
	Email     *string        `gorm:"type:text"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type Team struct {
	ID        string         `gorm:"type:uuid;primaryKey"`
	ChurchID  string         `gorm:"type:uuid;index;not null"`
	Name      string         `gorm:"not null"`
	IsActive  bool           `gorm:"not null;default:true"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TeamMember is the many-to-many membership join. A person may additionally
// carry a direct Person.TeamID reference; both sources count as membership.
type TeamMember struct {
	ID        string         `gorm:"type:uuid;primaryKey"`
	TeamID    string         `gorm:"type:uuid;index:idx_team_members_team_person;not null"`
	PersonID  string         `gorm:"type:uuid;index:idx_team_members_team_person;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Team Team `gorm:"foreignKey:TeamID;references:ID;constraint:OnDelete:CASCADE"`
}
