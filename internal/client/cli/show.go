package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/eventhub/internal/client/models"
)

func printEventDetails(e models.Event) {
	fmt.Println("Title:      ", e.Title)
	fmt.Println("Date:       ", e.Date.Format("2006-01-02"))
	if e.Time != "" {
		fmt.Println("Time:       ", e.Time)
	}
	if e.Location != "" {
		fmt.Println("Location:   ", e.Location)
	}
	if e.Category != "" {
		fmt.Println("Category:   ", e.Category)
	}
	if e.Description != "" {
		fmt.Println("Description:", e.Description)
	}
	if e.Banner != "" {
		fmt.Println("Banner:     ", e.Banner)
	}
	fmt.Printf("Created by:  %s <%s>\n", e.CreatedBy.Name, e.CreatedBy.Email)
	fmt.Printf("Attendees (%d):\n", len(e.Attendees))
	for _, u := range e.Attendees {
		fmt.Printf("  - %s <%s>\n", u.Name, u.Email)
	}
}

// Show prompts for an event ID and prints the full event, attendees included.
func (a *App) Show(ctx context.Context) error {

	id, err := GetSimpleText(a.reader, "Enter event ID", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	event, err := a.client.GetEvent(ctx, id)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	printEventDetails(event)
	return nil
}
