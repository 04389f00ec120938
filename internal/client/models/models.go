// Package models defines the wire shapes the CLI exchanges with the server.
package models

import "time"

// Categories is the label set the server recognizes, offered to the user when
// creating or searching events.
var Categories = []string{"Tech", "Music", "Art", "Sports", "Business", "Education", "Health", "Other"}

// User identifies an account as the server exposes it. Credentials never
// travel in this shape.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Event mirrors the server's event view: the event fields plus the resolved
// creator and attendee references.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	Banner      string    `json:"banner,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	CreatedBy   User      `json:"createdBy"`
	Attendees   []User    `json:"attendees"`
}
