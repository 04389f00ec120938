package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Delete removes an event the user created, after a confirmation prompt.
func (a *App) Delete(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	id, err := GetSimpleText(a.reader, "Enter event ID", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	confirm, err := GetSimpleText(a.reader, "Delete this event? (yes/no)", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	if !strings.EqualFold(confirm, "yes") && !strings.EqualFold(confirm, "y") {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := a.client.DeleteEvent(ctx, id); err != nil {
		a.reportAPIError(err)
		return err
	}

	fmt.Println("Event deleted.")
	return nil
}
