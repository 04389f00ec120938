package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/eventhub/internal/client/api"
)

// Edit updates an event the user created. Fields left empty keep their
// current value; only the creator may edit.
func (a *App) Edit(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	id, err := GetSimpleText(a.reader, "Enter event ID", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	fmt.Println("Leave a field empty to keep its current value.")

	in := api.EventInput{}

	if in.Title, err = GetSimpleText(a.reader, "New title", os.Stdout); err != nil {
		fmt.Println(err.Error())
		return err
	}
	if in.Date, err = GetSimpleText(a.reader, "New date (YYYY-MM-DD)", os.Stdout); err != nil {
		fmt.Println(err.Error())
		return err
	}
	if in.Time, err = GetSimpleText(a.reader, "New time", os.Stdout); err != nil {
		fmt.Println(err.Error())
		return err
	}
	if in.Location, err = GetSimpleText(a.reader, "New location", os.Stdout); err != nil {
		fmt.Println(err.Error())
		return err
	}
	if in.Category, err = GetSimpleText(a.reader, "New category", os.Stdout); err != nil {
		fmt.Println(err.Error())
		return err
	}
	if in.Description, err = GetMultiline(a.reader, "New description", os.Stdout); err != nil {
		fmt.Println(err.Error())
		return err
	}
	if in.BannerPath, err = GetSimpleText(a.reader, "New banner image file", os.Stdout); err != nil {
		fmt.Println(err.Error())
		return err
	}

	event, err := a.client.UpdateEvent(ctx, id, in)
	if err != nil {
		a.reportAPIError(err)
		return err
	}

	fmt.Println("Event updated:", formatEventLine(event))
	return nil
}
