package events

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func testDate(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
}

func TestCreate_ReturnsGeneratedColumns(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("e-1", now, now)

	mock.ExpectQuery(`INSERT\s+INTO\s+events`).
		WithArgs("Meetup", "desc", testDate(t), "18:00", "Riga", "Tech", "", "u-1").
		WillReturnRows(rows)

	e := &models.Event{
		Title: "Meetup", Description: "desc", Date: testDate(t),
		TimeLabel: "18:00", Location: "Riga", Category: "Tech", CreatedBy: "u-1",
	}
	got, err := repo.Create(context.Background(), e)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "e-1" || !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected event: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*title`).
		WithArgs("e-404").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "e-404")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected common.ErrNotFound, got %v", err)
	}
}

func TestList_ResolvesCreatorAndAttendees(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)

	eventRows := sqlmock.NewRows([]string{
		"id", "title", "description", "event_date", "time_label", "location",
		"category", "banner", "created_at", "updated_at", "uid", "uname", "uemail",
	}).
		AddRow("e-1", "Meetup", "", testDate(t), "", "", "Tech", "", now, now, "u-1", "Alice", "alice@example.com").
		AddRow("e-2", "Concert", "", testDate(t), "", "", "Music", "", now, now, "u-2", "Bob", "bob@example.com")

	mock.ExpectQuery(`(?s)SELECT\s+e\.id,.*FROM\s+events\s+e\s+JOIN\s+users\s+u`).
		WillReturnRows(eventRows)

	attendeeRows := sqlmock.NewRows([]string{"event_id", "id", "name", "email"}).
		AddRow("e-1", "u-2", "Bob", "bob@example.com")

	mock.ExpectQuery(`(?s)SELECT\s+a\.event_id,.*FROM\s+event_attendees\s+a`).
		WillReturnRows(attendeeRows)

	views, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 events, got %d", len(views))
	}
	if views[0].Creator.Name != "Alice" || views[0].CreatedBy != "u-1" {
		t.Fatalf("creator not resolved: %+v", views[0].Creator)
	}
	if len(views[0].Attendees) != 1 || views[0].Attendees[0].Email != "bob@example.com" {
		t.Fatalf("attendees not resolved: %+v", views[0].Attendees)
	}
	if len(views[1].Attendees) != 0 {
		t.Fatalf("expected empty attendee list, got %+v", views[1].Attendees)
	}
}

func TestUpdate_MissingRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+events`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Event{ID: "e-404", Title: "x", Date: testDate(t)})
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected common.ErrNotFound, got %v", err)
	}
}

func TestUpdate_NeverTouchesCreator(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// The creator column is absent from the UPDATE statement entirely.
	mock.ExpectExec(`(?s)^UPDATE\s+events\s+SET\s+title\s*=\s*\$1,\s*description\s*=\s*\$2,\s*event_date\s*=\s*\$3,\s*time_label\s*=\s*\$4,\s*location\s*=\s*\$5,\s*category\s*=\s*\$6,\s*banner\s*=\s*\$7,\s*updated_at\s*=\s*now\(\)\s*WHERE\s+id\s*=\s*\$8\s*$`).
		WithArgs("Meetup", "", testDate(t), "", "", "", "", "e-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &models.Event{ID: "e-1", Title: "Meetup", Date: testDate(t), CreatedBy: "ignored"})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+events`).
		WithArgs("e-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "e-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	mock.ExpectExec(`DELETE\s+FROM\s+events`).
		WithArgs("e-404").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "e-404"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected common.ErrNotFound, got %v", err)
	}
}

func TestAddAttendee_AtomicInsertIfAbsent(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+event_attendees\s*\(event_id,\s*user_id\)\s*VALUES\s*\(\$1,\s*\$2\)\s*ON\s+CONFLICT\s*\(event_id,\s*user_id\)\s*DO\s+NOTHING\s*$`

	mock.ExpectExec(q).
		WithArgs("e-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	added, err := repo.AddAttendee(context.Background(), "e-1", "u-1")
	if err != nil {
		t.Fatalf("AddAttendee error: %v", err)
	}
	if !added {
		t.Fatalf("expected first insert to add")
	}

	mock.ExpectExec(q).
		WithArgs("e-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	added, err = repo.AddAttendee(context.Background(), "e-1", "u-1")
	if err != nil {
		t.Fatalf("AddAttendee error: %v", err)
	}
	if added {
		t.Fatalf("expected duplicate insert to report not added")
	}
}
