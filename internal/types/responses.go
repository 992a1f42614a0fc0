package types

import "time"

type UserResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type EventSummary struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Date          string       `json:"date"`
	Time          string       `json:"time"`
	Location      string       `json:"location"`
	CreatorID     string       `json:"creatorId"`
	Creator       UserResponse `json:"creator"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
	AttendeeCount int          `json:"attendeeCount"`
	IsAttending   bool         `json:"isAttending"`
}

type AttendeeResponse struct {
	ID       string       `json:"id"`
	UserID   string       `json:"userId"`
	EventID  string       `json:"eventId"`
	JoinedAt time.Time    `json:"joinedAt"`
	User     UserResponse `json:"user"`
}

// EventDetail is an EventSummary plus the attendance list, oldest join first.
type EventDetail struct {
	EventSummary
	Attendees []AttendeeResponse `json:"attendees"`
}
