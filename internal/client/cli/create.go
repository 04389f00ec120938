package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/eventhub/internal/client/api"
	"github.com/dmitrijs2005/eventhub/internal/client/models"
	"github.com/dmitrijs2005/eventhub/internal/common"
)

func (a *App) requireLogin() error {
	if a.isLoggedIn() {
		return nil
	}
	fmt.Println("Please log in first.")
	return fmt.Errorf("not logged in")
}

// reportAPIError prints the error; a 401 while logged in means the saved
// token expired, so the stale session is dropped.
func (a *App) reportAPIError(err error) {
	if errors.Is(err, common.ErrUnauthorized) && a.isLoggedIn() {
		a.client.SetToken("")
		a.user = nil
		_ = a.sessions.Clear()
		fmt.Println("Session expired, please log in again.")
		return
	}
	fmt.Println(err.Error())
}

// Create prompts for the event fields and creates the event. Title and date
// are required by the server; the rest may be left empty. A banner is
// attached by naming a local image file.
func (a *App) Create(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	in := api.EventInput{}
	var err error

	if in.Title, err = GetSimpleText(a.reader, "Title", os.Stdout); err != nil {
		fmt.Println(err.Error())
		return err
	}
	if in.Date, err = GetSimpleText(a.reader, "Date (YYYY-MM-DD)", os.Stdout); err != nil {
		fmt.Println(err.Error())
		return err
	}
	if in.Time, err = GetSimpleText(a.reader, "Time (e.g. 18:30; optional)", os.Stdout); err != nil {
		fmt.Println(err.Error())
		return err
	}
	if in.Location, err = GetSimpleText(a.reader, "Location (optional)", os.Stdout); err != nil {
		fmt.Println(err.Error())
		return err
	}
	if in.Category, err = GetSimpleText(a.reader, fmt.Sprintf("Category (%s; optional)", strings.Join(models.Categories, ", ")), os.Stdout); err != nil {
		fmt.Println(err.Error())
		return err
	}
	if in.Description, err = GetMultiline(a.reader, "Description (optional)", os.Stdout); err != nil {
		fmt.Println(err.Error())
		return err
	}
	if in.BannerPath, err = GetSimpleText(a.reader, "Banner image file (optional)", os.Stdout); err != nil {
		fmt.Println(err.Error())
		return err
	}

	event, err := a.client.CreateEvent(ctx, in)
	if err != nil {
		a.reportAPIError(err)
		return err
	}

	fmt.Println("Event created, id =", event.ID)
	return nil
}
