package cli

import (
	"context"
	"fmt"
	"os"
)

// Join registers the current user as an attendee of an event. Joining the
// same event twice is rejected by the server.
func (a *App) Join(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	id, err := GetSimpleText(a.reader, "Enter event ID", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	event, err := a.client.JoinEvent(ctx, id)
	if err != nil {
		a.reportAPIError(err)
		return err
	}

	fmt.Printf("You are registered for %q (%d attending).\n", event.Title, len(event.Attendees))
	return nil
}
