package services

import (
	"context"
	"testing"

	"github.com/huddle-dev/huddle/internal/auth"
	"github.com/huddle-dev/huddle/internal/models"
	"github.com/stretchr/testify/require"
)

func createUser(t *testing.T, users *Users, email string) auth.Identity {
	t.Helper()

	user, err := users.CreateUser(context.Background(), email, "User "+email, "password123")
	require.NoError(t, err)

	return auth.Identity{UserID: user.ID, Email: user.Email}
}

func sampleEvent(title, date string) EventInput {
	return EventInput{
		Title:       title,
		Description: "Bring snacks",
		Date:        date,
		Time:        "18:00",
		Location:    "Room 101",
	}
}

func ptr(s string) *string { return &s }

func countAttendees(t *testing.T, catalog *Catalog, eventID string) int64 {
	t.Helper()

	var n int64
	require.NoError(t, catalog.db.Model(&models.EventAttendee{}).Where("event_id = ?", eventID).Count(&n).Error)
	return n
}
