package cli

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/client/models"
)

// nowFn is a test seam for time.Now.
var nowFn = time.Now

// Filter narrows an event list after it is fetched. All criteria are
// optional; an empty Filter matches everything.
type Filter struct {
	// Query matches case-insensitively against title, description and location.
	Query string
	// Category matches the event category exactly, ignoring case.
	Category string
	// Window is "", "week" or "month": events dated within the current
	// calendar week (Monday-based) or the current calendar month.
	Window string
}

// Matches reports whether e passes every criterion set on f, judged at the
// moment 'now'.
func (f Filter) Matches(e models.Event, now time.Time) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(e.Title), q) &&
			!strings.Contains(strings.ToLower(e.Description), q) &&
			!strings.Contains(strings.ToLower(e.Location), q) {
			return false
		}
	}

	if f.Category != "" && !strings.EqualFold(f.Category, e.Category) {
		return false
	}

	switch f.Window {
	case "week":
		start := startOfWeek(now)
		end := start.AddDate(0, 0, 7)
		d := e.Date
		if d.Before(start) || !d.Before(end) {
			return false
		}
	case "month":
		if e.Date.Year() != now.Year() || e.Date.Month() != now.Month() {
			return false
		}
	}

	return true
}

// Apply returns the events from the list that match f, preserving order.
func (f Filter) Apply(events []models.Event, now time.Time) []models.Event {
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if f.Matches(e, now) {
			out = append(out, e)
		}
	}
	return out
}

// startOfWeek returns midnight on the Monday of now's week, in now's location.
func startOfWeek(now time.Time) time.Time {
	offset := (int(now.Weekday()) + 6) % 7
	y, m, d := now.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}
