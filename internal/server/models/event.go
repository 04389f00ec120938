package models

import "time"

// Categories is the fixed label set offered by the UI. It is informational
// only: the server never rejects an event for carrying a different label.
var Categories = []string{"Tech", "Music", "Art", "Sports", "Business", "Education", "Health", "Other"}

// Event is a single happening. CreatedBy is set once at creation and never
// changes; Attendees holds each user at most once.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	TimeLabel   string    `json:"time"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	Banner      string    `json:"banner,omitempty"`
	CreatedBy   string    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// EventView is an event with creator and attendee references resolved to
// name/email, the shape returned by list/get.
type EventView struct {
	Event
	Creator   UserRef   `json:"createdBy"`
	Attendees []UserRef `json:"attendees"`
}
