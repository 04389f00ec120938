package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/dbx"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
	"github.com/dmitrijs2005/eventhub/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// CreateEventInput carries the fields accepted at event creation. Banner is
// an already-stored reference, not raw file content.
type CreateEventInput struct {
	Title       string
	Description string
	Date        time.Time
	TimeLabel   string
	Location    string
	Category    string
	Banner      string
}

// UpdateEventInput is a partial update: nil fields keep their prior value.
// A nil Banner keeps the existing banner reference.
type UpdateEventInput struct {
	Title       *string
	Description *string
	Date        *time.Time
	TimeLabel   *string
	Location    *string
	Category    *string
	Banner      *string
}

type EventService struct {
	db *sql.DB
	rm repomanager.RepositoryManager
}

func NewEventService(db *sql.DB, rm repomanager.RepositoryManager) *EventService {
	return &EventService{db: db, rm: rm}
}

// checkID rejects identifiers that are not structurally valid before they
// reach the store.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrInvalidID
	}
	return nil
}

// Create persists a new event owned by userID with an empty attendee list.
func (s *EventService) Create(ctx context.Context, userID string, in CreateEventInput) (*models.EventView, error) {

	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if in.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", common.ErrValidation)
	}

	event := &models.Event{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Date:        in.Date,
		TimeLabel:   in.TimeLabel,
		Location:    in.Location,
		Category:    in.Category,
		Banner:      in.Banner,
		CreatedBy:   userID,
	}

	event, err := s.rm.Events(s.db).Create(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("error creating event: %w", err)
	}

	return s.rm.Events(s.db).GetView(ctx, event.ID)
}

// List returns every event with creator and attendees resolved to
// name/email. All filtering happens client-side over this result set.
func (s *EventService) List(ctx context.Context) ([]*models.EventView, error) {
	return s.rm.Events(s.db).List(ctx)
}

func (s *EventService) GetByID(ctx context.Context, id string) (*models.EventView, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return s.rm.Events(s.db).GetView(ctx, id)
}

// Update merges the supplied fields into the event. Only the creator may
// update, and the creator reference itself is immutable: no update path
// ever writes it.
func (s *EventService) Update(ctx context.Context, id, userID string, in UpdateEventInput) (*models.EventView, error) {

	if err := checkID(id); err != nil {
		return nil, err
	}

	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if in.Date != nil && in.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", common.ErrValidation)
	}

	// Read-merge-write runs inside one transaction so a concurrent update
	// cannot slip between the read and the write.
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.rm.Events(tx)

		event, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if event.CreatedBy != userID {
			return common.ErrForbidden
		}

		if in.Title != nil {
			event.Title = strings.TrimSpace(*in.Title)
		}
		if in.Description != nil {
			event.Description = *in.Description
		}
		if in.Date != nil {
			event.Date = *in.Date
		}
		if in.TimeLabel != nil {
			event.TimeLabel = *in.TimeLabel
		}
		if in.Location != nil {
			event.Location = *in.Location
		}
		if in.Category != nil {
			event.Category = *in.Category
		}
		if in.Banner != nil {
			event.Banner = *in.Banner
		}

		return repo.Update(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	return s.rm.Events(s.db).GetView(ctx, id)
}

// Delete removes the event entirely. Attendee rows go with it; nothing
// else references events, so no further cleanup is needed.
func (s *EventService) Delete(ctx context.Context, id, userID string) error {

	if err := checkID(id); err != nil {
		return err
	}

	repo := s.rm.Events(s.db)

	event, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event.CreatedBy != userID {
		return common.ErrForbidden
	}

	return repo.Delete(ctx, id)
}

// Register adds userID to the attendee set. The insert is atomic
// add-if-absent, so a second registration (including a concurrent
// duplicate request) fails with common.ErrAlreadyRegistered. There is no
// unregister path.
func (s *EventService) Register(ctx context.Context, id, userID string) (*models.EventView, error) {

	if err := checkID(id); err != nil {
		return nil, err
	}

	repo := s.rm.Events(s.db)

	if _, err := repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	added, err := repo.AddAttendee(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("error registering attendee: %w", err)
	}
	if !added {
		return nil, common.ErrAlreadyRegistered
	}

	view, err := repo.GetView(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Deleted between insert and read; surface as missing.
			return nil, common.ErrNotFound
		}
		return nil, err
	}

	return view, nil
}
