package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/huddle-dev/huddle/internal/auth"
	"github.com/huddle-dev/huddle/internal/models"
	"github.com/huddle-dev/huddle/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Catalog is CRUD over events. Mutations are limited to the event's creator.
type Catalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

type EventInput struct {
	Title       string
	Description string
	Date        string
	Time        string
	Location    string
}

// EventPatch is a partial update. A nil field keeps its stored value; a
// present field must be non-blank.
type EventPatch struct {
	Title       *string
	Description *string
	Date        *string
	Time        *string
	Location    *string
}

func (c *Catalog) ListAll(ctx context.Context, caller *auth.Identity) ([]types.EventSummary, error) {
	var events []models.Event

	err := c.db.WithContext(ctx).
		Preload("Creator").
		Preload("Attendees").
		Order(clause.OrderByColumn{Column: clause.Column{Name: "date"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}}).
		Find(&events).Error

	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	summaries := make([]types.EventSummary, 0, len(events))
	for _, event := range events {
		summaries = append(summaries, summarize(event, caller))
	}

	return summaries, nil
}

func (c *Catalog) GetByID(ctx context.Context, id string, caller *auth.Identity) (types.EventDetail, error) {
	var event models.Event

	err := c.db.WithContext(ctx).
		Preload("Creator").
		Preload("Attendees", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at ASC")
		}).
		Preload("Attendees.User").
		First(&event, "id = ?", id).Error

	if err != nil {
		return types.EventDetail{}, notFoundOr(err, "Event not found")
	}

	detail := types.EventDetail{
		EventSummary: summarize(event, caller),
		Attendees:    make([]types.AttendeeResponse, 0, len(event.Attendees)),
	}

	for _, a := range event.Attendees {
		detail.Attendees = append(detail.Attendees, types.AttendeeResponse{
			ID:       a.ID,
			UserID:   a.UserID,
			EventID:  a.EventID,
			JoinedAt: a.JoinedAt,
			User:     PublicUser(a.User),
		})
	}

	return detail, nil
}

func (c *Catalog) Create(ctx context.Context, caller auth.Identity, in EventInput) (types.EventDetail, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	timeOfDay := strings.TrimSpace(in.Time)
	location := strings.TrimSpace(in.Location)

	if title == "" || description == "" || strings.TrimSpace(in.Date) == "" || timeOfDay == "" || location == "" {
		return types.EventDetail{}, types.Errorf(types.ErrInvalidInput, "Please provide all required fields")
	}

	date, err := ParseDate(in.Date)
	if err != nil {
		return types.EventDetail{}, err
	}

	event := models.Event{
		Title:       title,
		Description: description,
		Date:        date,
		Time:        timeOfDay,
		Location:    location,
		CreatorID:   caller.UserID,
	}

	if err := c.db.WithContext(ctx).Create(&event).Error; err != nil {
		// The token outlived its user.
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return types.EventDetail{}, types.Errorf(types.ErrUnauthenticated, "User not found")
		}
		return types.EventDetail{}, fmt.Errorf("create event: %w", err)
	}

	return c.GetByID(ctx, event.ID, &caller)
}

// Authorize checks that the event exists and that caller created it.
func (c *Catalog) Authorize(ctx context.Context, id string, caller auth.Identity, action string) error {
	var event models.Event

	if err := c.db.WithContext(ctx).Select("id", "creator_id").First(&event, "id = ?", id).Error; err != nil {
		return notFoundOr(err, "Event not found")
	}

	return auth.RequireCreator(event.CreatorID, caller.UserID, action)
}

func (c *Catalog) Update(ctx context.Context, id string, caller auth.Identity, patch EventPatch) (types.EventDetail, error) {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.Event

		if err := tx.First(&event, "id = ?", id).Error; err != nil {
			return notFoundOr(err, "Event not found")
		}

		if err := auth.RequireCreator(event.CreatorID, caller.UserID, "update"); err != nil {
			return err
		}

		updates, err := patch.updates()
		if err != nil {
			return err
		}

		if len(updates) == 0 {
			return nil
		}

		res := tx.Model(&models.Event{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("update event: %w", res.Error)
		}

		if res.RowsAffected == 0 {
			return types.Errorf(types.ErrNotFound, "Event not found")
		}

		return nil
	})

	if err != nil {
		return types.EventDetail{}, err
	}

	return c.GetByID(ctx, id, &caller)
}

// Delete removes the event and all of its attendance rows in one transaction.
func (c *Catalog) Delete(ctx context.Context, id string, caller auth.Identity) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.Event

		if err := tx.Select("id", "creator_id").First(&event, "id = ?", id).Error; err != nil {
			return notFoundOr(err, "Event not found")
		}

		if err := auth.RequireCreator(event.CreatorID, caller.UserID, "delete"); err != nil {
			return err
		}

		if err := tx.Where("event_id = ?", id).Delete(&models.EventAttendee{}).Error; err != nil {
			return fmt.Errorf("delete attendees: %w", err)
		}

		res := tx.Where("id = ?", id).Delete(&models.Event{})
		if res.Error != nil {
			return fmt.Errorf("delete event: %w", res.Error)
		}

		if res.RowsAffected == 0 {
			return types.Errorf(types.ErrNotFound, "Event not found")
		}

		return nil
	})
}

func (p EventPatch) updates() (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	text := map[string]*string{
		"title":       p.Title,
		"description": p.Description,
		"time":        p.Time,
		"location":    p.Location,
	}

	for column, value := range text {
		if value == nil {
			continue
		}
		trimmed := strings.TrimSpace(*value)
		if trimmed == "" {
			return nil, types.Errorf(types.ErrInvalidInput, "Field %q cannot be empty", column)
		}
		updates[column] = trimmed
	}

	if p.Date != nil {
		date, err := ParseDate(*p.Date)
		if err != nil {
			return nil, err
		}
		updates["date"] = date
	}

	return updates, nil
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp, keeping only the UTC calendar date.
func ParseDate(s string) (datatypes.Date, error) {
	s = strings.TrimSpace(s)

	if t, err := time.Parse(types.DateLayout, s); err == nil {
		return datatypes.Date(t), nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		y, m, d := t.UTC().Date()
		return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)), nil
	}

	return datatypes.Date{}, types.Errorf(types.ErrInvalidInput, "Invalid date %q, expected YYYY-MM-DD", s)
}

func summarize(event models.Event, caller *auth.Identity) types.EventSummary {
	summary := types.EventSummary{
		ID:            event.ID,
		Title:         event.Title,
		Description:   event.Description,
		Date:          time.Time(event.Date).Format(types.DateLayout),
		Time:          event.Time,
		Location:      event.Location,
		CreatorID:     event.CreatorID,
		Creator:       PublicUser(event.Creator),
		CreatedAt:     event.CreatedAt,
		UpdatedAt:     event.UpdatedAt,
		AttendeeCount: len(event.Attendees),
	}

	if caller != nil {
		for _, a := range event.Attendees {
			if a.UserID == caller.UserID {
				summary.IsAttending = true
				break
			}
		}
	}

	return summary
}

// PublicUser is the outward projection of a user. It never includes the password hash.
func PublicUser(user models.User) types.UserResponse {
	return types.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}
