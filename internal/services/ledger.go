package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huddle-dev/huddle/internal/auth"
	"github.com/huddle-dev/huddle/internal/models"
	"github.com/huddle-dev/huddle/internal/types"
	"gorm.io/gorm"
)

// Ledger records who attends which event. The (user_id, event_id) unique
// index decides duplicate joins, so concurrent joins need no locking here.
type Ledger struct {
	db  *gorm.DB
	now func() time.Time
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db, now: time.Now}
}

func (l *Ledger) Join(ctx context.Context, caller auth.Identity, eventID string) (models.EventAttendee, error) {
	var event models.Event

	if err := l.db.WithContext(ctx).Select("id").First(&event, "id = ?", eventID).Error; err != nil {
		return models.EventAttendee{}, notFoundOr(err, "Event not found")
	}

	attendee := models.EventAttendee{
		UserID:   caller.UserID,
		EventID:  eventID,
		JoinedAt: l.now(),
	}

	err := l.db.WithContext(ctx).Create(&attendee).Error

	switch {
	case err == nil:
		return attendee, nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return models.EventAttendee{}, types.Errorf(types.ErrConflict, "You already joined this event")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		// The event was deleted between the lookup and the insert.
		return models.EventAttendee{}, types.Errorf(types.ErrNotFound, "Event not found")
	default:
		return models.EventAttendee{}, fmt.Errorf("create attendee: %w", err)
	}
}

func (l *Ledger) Leave(ctx context.Context, caller auth.Identity, eventID string) error {
	res := l.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", caller.UserID, eventID).
		Delete(&models.EventAttendee{})

	if res.Error != nil {
		return fmt.Errorf("delete attendee: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return types.Errorf(types.ErrNotFound, "You are not attending this event")
	}

	return nil
}
