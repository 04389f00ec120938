package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/dbx"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, event *models.Event) (*models.Event, error) {

	query :=
		`INSERT INTO events (title, description, event_date, time_label, location, category, banner, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		event.Title, event.Description, event.Date, event.TimeLabel,
		event.Location, event.Category, event.Banner, event.CreatedBy).
		Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return event, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	query :=
		`SELECT id, title, description, event_date, time_label, location, category, banner, created_by, created_at, updated_at
		 FROM events
		 WHERE id = $1
		 `

	event := &models.Event{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID, &event.Title, &event.Description, &event.Date,
		&event.TimeLabel, &event.Location, &event.Category, &event.Banner,
		&event.CreatedBy, &event.CreatedAt, &event.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return event, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.EventView, error) {
	query :=
		`SELECT e.id, e.title, e.description, e.event_date, e.time_label, e.location, e.category, e.banner,
		        e.created_at, e.updated_at, u.id, u.name, u.email
		 FROM events e
		 JOIN users u ON u.id = e.created_by
		 ORDER BY e.event_date, e.created_at
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	views := []*models.EventView{}
	byID := map[string]*models.EventView{}

	for rows.Next() {
		v := &models.EventView{Attendees: []models.UserRef{}}
		err := rows.Scan(
			&v.ID, &v.Title, &v.Description, &v.Date, &v.TimeLabel,
			&v.Location, &v.Category, &v.Banner, &v.CreatedAt, &v.UpdatedAt,
			&v.Creator.ID, &v.Creator.Name, &v.Creator.Email)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		v.CreatedBy = v.Creator.ID
		views = append(views, v)
		byID[v.ID] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	if err := r.loadAttendees(ctx, byID, ""); err != nil {
		return nil, err
	}

	return views, nil
}

func (r *PostgresRepository) GetView(ctx context.Context, id string) (*models.EventView, error) {
	query :=
		`SELECT e.id, e.title, e.description, e.event_date, e.time_label, e.location, e.category, e.banner,
		        e.created_at, e.updated_at, u.id, u.name, u.email
		 FROM events e
		 JOIN users u ON u.id = e.created_by
		 WHERE e.id = $1
		 `

	v := &models.EventView{Attendees: []models.UserRef{}}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.Title, &v.Description, &v.Date, &v.TimeLabel,
		&v.Location, &v.Category, &v.Banner, &v.CreatedAt, &v.UpdatedAt,
		&v.Creator.ID, &v.Creator.Name, &v.Creator.Email)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	v.CreatedBy = v.Creator.ID

	if err := r.loadAttendees(ctx, map[string]*models.EventView{v.ID: v}, id); err != nil {
		return nil, err
	}

	return v, nil
}

// loadAttendees fills the Attendees slices of the given views. When eventID
// is non-empty only that event's rows are fetched.
func (r *PostgresRepository) loadAttendees(ctx context.Context, views map[string]*models.EventView, eventID string) error {

	query :=
		`SELECT a.event_id, u.id, u.name, u.email
		 FROM event_attendees a
		 JOIN users u ON u.id = a.user_id
		 `
	args := []any{}
	if eventID != "" {
		query += `WHERE a.event_id = $1
		 `
		args = append(args, eventID)
	}
	query += `ORDER BY a.registered_at
		 `

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var evID string
		var ref models.UserRef
		if err := rows.Scan(&evID, &ref.ID, &ref.Name, &ref.Email); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}
		if v, ok := views[evID]; ok {
			v.Attendees = append(v.Attendees, ref)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating rows: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, event *models.Event) error {

	query :=
		`UPDATE events
		 SET title = $1, description = $2, event_date = $3, time_label = $4,
		     location = $5, category = $6, banner = $7, updated_at = now()
		 WHERE id = $8
		 `

	res, err := r.db.ExecContext(ctx, query,
		event.Title, event.Description, event.Date, event.TimeLabel,
		event.Location, event.Category, event.Banner, event.ID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking affected rows: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {

	query :=
		`DELETE FROM events
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking affected rows: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}

// AddAttendee relies on the (event_id, user_id) primary key: the insert is
// the atomic add-to-set-if-absent, so two concurrent identical requests
// cannot both succeed.
func (r *PostgresRepository) AddAttendee(ctx context.Context, eventID, userID string) (bool, error) {

	query :=
		`INSERT INTO event_attendees (event_id, user_id)
		 VALUES ($1, $2)
		 ON CONFLICT (event_id, user_id) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return false, fmt.Errorf("error performing sql request: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error checking affected rows: %w", err)
	}

	return affected > 0, nil
}
