package services

import (
	"context"
	"testing"
	"time"

	"github.com/huddle-dev/huddle/internal/testutil"
	"github.com/huddle-dev/huddle/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEvent_Validation(t *testing.T) {
	gdb := testutil.NewDB(t)
	catalog := NewCatalog(gdb)
	alice := createUser(t, NewUsers(gdb), "a@x.com")
	ctx := context.Background()

	missing := sampleEvent("", "2030-01-01")
	_, err := catalog.Create(ctx, alice, missing)
	assert.ErrorIs(t, err, types.ErrInvalidInput)

	badDate := sampleEvent("Party", "next tuesday")
	_, err = catalog.Create(ctx, alice, badDate)
	assert.ErrorIs(t, err, types.ErrInvalidInput)

	event, err := catalog.Create(ctx, alice, sampleEvent("Party", "2030-01-01"))
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, event.CreatorID)
	assert.Equal(t, alice.UserID, event.Creator.ID)
	assert.Equal(t, "2030-01-01", event.Date)
	assert.Empty(t, event.Attendees)
}

func TestListAll(t *testing.T) {
	gdb := testutil.NewDB(t)
	users := NewUsers(gdb)
	catalog := NewCatalog(gdb)
	ledger := NewLedger(gdb)
	ctx := context.Background()

	alice := createUser(t, users, "a@x.com")
	bob := createUser(t, users, "b@x.com")

	later, err := catalog.Create(ctx, alice, sampleEvent("Later", "2030-06-01"))
	require.NoError(t, err)
	sooner, err := catalog.Create(ctx, alice, sampleEvent("Sooner", "2030-02-01"))
	require.NoError(t, err)

	_, err = ledger.Join(ctx, bob, later.ID)
	require.NoError(t, err)

	anonymous, err := catalog.ListAll(ctx, nil)
	require.NoError(t, err)
	require.Len(t, anonymous, 2)
	assert.Equal(t, sooner.ID, anonymous[0].ID)
	assert.Equal(t, later.ID, anonymous[1].ID)
	assert.Equal(t, 1, anonymous[1].AttendeeCount)
	assert.False(t, anonymous[1].IsAttending)

	asBob, err := catalog.ListAll(ctx, &bob)
	require.NoError(t, err)
	assert.False(t, asBob[0].IsAttending)
	assert.True(t, asBob[1].IsAttending)
}

func TestGetByID_AttendeesInJoinOrder(t *testing.T) {
	gdb := testutil.NewDB(t)
	users := NewUsers(gdb)
	catalog := NewCatalog(gdb)
	ledger := NewLedger(gdb)
	ctx := context.Background()

	alice := createUser(t, users, "a@x.com")
	bob := createUser(t, users, "b@x.com")
	carol := createUser(t, users, "c@x.com")

	event, err := catalog.Create(ctx, alice, sampleEvent("Meetup", "2030-03-03"))
	require.NoError(t, err)

	base := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)

	ledger.now = func() time.Time { return base.Add(time.Hour) }
	_, err = ledger.Join(ctx, carol, event.ID)
	require.NoError(t, err)

	ledger.now = func() time.Time { return base }
	_, err = ledger.Join(ctx, bob, event.ID)
	require.NoError(t, err)

	detail, err := catalog.GetByID(ctx, event.ID, nil)
	require.NoError(t, err)
	require.Len(t, detail.Attendees, 2)
	assert.Equal(t, bob.UserID, detail.Attendees[0].UserID)
	assert.Equal(t, "b@x.com", detail.Attendees[0].User.Email)
	assert.Equal(t, carol.UserID, detail.Attendees[1].UserID)

	_, err = catalog.GetByID(ctx, "00000000-0000-0000-0000-000000000000", nil)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestUpdateEvent(t *testing.T) {
	gdb := testutil.NewDB(t)
	users := NewUsers(gdb)
	catalog := NewCatalog(gdb)
	ctx := context.Background()

	alice := createUser(t, users, "a@x.com")
	bob := createUser(t, users, "b@x.com")

	event, err := catalog.Create(ctx, alice, sampleEvent("Draft", "2030-01-01"))
	require.NoError(t, err)

	t.Run("non-creator is forbidden", func(t *testing.T) {
		_, err := catalog.Update(ctx, event.ID, bob, EventPatch{Title: ptr("Hijacked")})
		assert.ErrorIs(t, err, types.ErrForbidden)
		assert.Equal(t, "Only creator can update this event", types.Message(err))

		// Ownership is decided before the patch is validated.
		_, err = catalog.Update(ctx, event.ID, bob, EventPatch{Title: ptr("")})
		assert.ErrorIs(t, err, types.ErrForbidden)
	})

	t.Run("absent fields keep their value", func(t *testing.T) {
		updated, err := catalog.Update(ctx, event.ID, alice, EventPatch{Title: ptr("Final"), Date: ptr("2030-02-02")})
		require.NoError(t, err)
		assert.Equal(t, "Final", updated.Title)
		assert.Equal(t, "2030-02-02", updated.Date)
		assert.Equal(t, "Bring snacks", updated.Description)
		assert.Equal(t, alice.UserID, updated.CreatorID)
	})

	t.Run("blank field is rejected", func(t *testing.T) {
		_, err := catalog.Update(ctx, event.ID, alice, EventPatch{Location: ptr("   ")})
		assert.ErrorIs(t, err, types.ErrInvalidInput)

		unchanged, err := catalog.GetByID(ctx, event.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, "Room 101", unchanged.Location)
	})

	t.Run("empty patch is a no-op", func(t *testing.T) {
		same, err := catalog.Update(ctx, event.ID, alice, EventPatch{})
		require.NoError(t, err)
		assert.Equal(t, "Final", same.Title)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := catalog.Update(ctx, "00000000-0000-0000-0000-000000000000", alice, EventPatch{})
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestDeleteEvent(t *testing.T) {
	gdb := testutil.NewDB(t)
	users := NewUsers(gdb)
	catalog := NewCatalog(gdb)
	ledger := NewLedger(gdb)
	ctx := context.Background()

	alice := createUser(t, users, "a@x.com")
	bob := createUser(t, users, "b@x.com")

	event, err := catalog.Create(ctx, alice, sampleEvent("Retro", "2030-01-01"))
	require.NoError(t, err)

	_, err = ledger.Join(ctx, bob, event.ID)
	require.NoError(t, err)

	err = catalog.Delete(ctx, event.ID, bob)
	assert.ErrorIs(t, err, types.ErrForbidden)
	assert.ErrorIs(t, catalog.Authorize(ctx, event.ID, bob, "delete"), types.ErrForbidden)
	assert.NoError(t, catalog.Authorize(ctx, event.ID, alice, "delete"))

	require.NoError(t, catalog.Delete(ctx, event.ID, alice))
	assert.Zero(t, countAttendees(t, catalog, event.ID))

	_, err = catalog.GetByID(ctx, event.ID, nil)
	assert.ErrorIs(t, err, types.ErrNotFound)

	err = catalog.Delete(ctx, event.ID, alice)
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = ledger.Join(ctx, bob, event.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2030-01-15", "2030-01-15", false},
		{" 2030-01-15 ", "2030-01-15", false},
		{"2030-01-15T23:30:00-02:00", "2030-01-16", false},
		{"2030-01-15T10:00:00Z", "2030-01-15", false},
		{"15/01/2030", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, types.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Time(got).Format(types.DateLayout))
		})
	}
}
