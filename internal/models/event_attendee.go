package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventAttendee is one RSVP. The (user_id, event_id) pair is unique at the storage level.
type EventAttendee struct {
	ID       string    `gorm:"primaryKey;type:varchar(36)"`
	UserID   string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_event"`
	EventID  string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_event;index"`
	JoinedAt time.Time `gorm:"not null"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (a *EventAttendee) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.JoinedAt.IsZero() {
		a.JoinedAt = time.Now()
	}
	return nil
}
