package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/eventhub/internal/client/models"
)

// formatEventLine renders one event for list output.
func formatEventLine(e models.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s", e.Date.Format("2006-01-02"), e.Title)
	if e.Time != "" {
		fmt.Fprintf(&b, " at %s", e.Time)
	}
	if e.Location != "" {
		fmt.Fprintf(&b, ", %s", e.Location)
	}
	if e.Category != "" {
		fmt.Fprintf(&b, " [%s]", e.Category)
	}
	fmt.Fprintf(&b, " (%d attending)  id=%s", len(e.Attendees), e.ID)
	return b.String()
}

func printEvents(events []models.Event) {
	if len(events) == 0 {
		fmt.Println("No events found.")
		return
	}
	for _, e := range events {
		fmt.Println(formatEventLine(e))
	}
}

// List fetches and prints every upcoming event.
func (a *App) List(ctx context.Context) error {
	events, err := a.client.ListEvents(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	printEvents(events)
	return nil
}

// Search fetches the full list and filters it locally by text, category and
// date window. Empty answers skip the criterion.
func (a *App) Search(ctx context.Context) error {

	query, err := GetSimpleText(a.reader, "Search text (empty for any)", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	category, err := GetSimpleText(a.reader, fmt.Sprintf("Category (%s; empty for any)", strings.Join(models.Categories, ", ")), os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	window, err := GetSimpleText(a.reader, "When (week, month; empty for any)", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	window = strings.ToLower(window)
	if window != "" && window != "week" && window != "month" {
		fmt.Println("Unknown date window:", window)
		return nil
	}

	events, err := a.client.ListEvents(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	f := Filter{Query: query, Category: category, Window: window}
	printEvents(f.Apply(events, nowFn()))
	return nil
}
