package models

import "gorm.io/datatypes"

type Event struct {
	BaseModel

	Title       string         `gorm:"not null"`
	Description string         `gorm:"not null"`
	Date        datatypes.Date `gorm:"not null;index"`
	Time        string         `gorm:"not null"` // free text, e.g. "18:00"
	Location    string         `gorm:"not null"`
	CreatorID   string         `gorm:"type:varchar(36);not null;index"`

	// Relationships
	Creator   User            `gorm:"foreignKey:CreatorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Attendees []EventAttendee `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
