package events

import (
	"context"

	"github.com/dmitrijs2005/eventhub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, event *models.Event) (*models.Event, error)

	// List returns every event with creator and attendees resolved.
	// Filtering and pagination are deliberately absent: the client works
	// over the full result set.
	List(ctx context.Context) ([]*models.EventView, error)

	GetByID(ctx context.Context, id string) (*models.Event, error)
	GetView(ctx context.Context, id string) (*models.EventView, error)

	// Update rewrites the mutable columns of the event row. created_by is
	// never part of the statement.
	Update(ctx context.Context, event *models.Event) error

	Delete(ctx context.Context, id string) error

	// AddAttendee atomically inserts (event, user) into the attendee set.
	// It returns false when the user was already registered.
	AddAttendee(ctx context.Context, eventID, userID string) (bool, error)
}
