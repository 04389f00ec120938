package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/dbx"
	"github.com/dmitrijs2005/eventhub/internal/server/config"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
	eventsrepo "github.com/dmitrijs2005/eventhub/internal/server/repositories/events"
	usersrepo "github.com/dmitrijs2005/eventhub/internal/server/repositories/users"
)

// --- in-memory fakes implementing the repository interfaces ---

type fakeUsersRepo struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	nextID  int
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrEmailAlreadyExists
	}
	f.nextID++
	u.ID = fmt.Sprintf("6f000000-0000-0000-0000-%012d", f.nextID)
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

type fakeEventsRepo struct {
	mu        sync.Mutex
	events    map[string]*models.Event
	attendees map[string][]string
	nextID    int
}

func newFakeEventsRepo() *fakeEventsRepo {
	return &fakeEventsRepo{
		events:    map[string]*models.Event{},
		attendees: map[string][]string{},
	}
}

func (f *fakeEventsRepo) Create(ctx context.Context, e *models.Event) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	e.ID = fmt.Sprintf("ee000000-0000-0000-0000-%012d", f.nextID)
	cp := *e
	f.events[e.ID] = &cp
	f.attendees[e.ID] = []string{}
	return e, nil
}

func (f *fakeEventsRepo) GetByID(ctx context.Context, id string) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.events[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventsRepo) view(e *models.Event) *models.EventView {
	v := &models.EventView{Event: *e, Attendees: []models.UserRef{}}
	v.Creator = models.UserRef{ID: e.CreatedBy}
	for _, uid := range f.attendees[e.ID] {
		v.Attendees = append(v.Attendees, models.UserRef{ID: uid})
	}
	return v
}

func (f *fakeEventsRepo) GetView(ctx context.Context, id string) (*models.EventView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.events[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return f.view(e), nil
}

func (f *fakeEventsRepo) List(ctx context.Context) ([]*models.EventView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids := make([]string, 0, len(f.events))
	for id := range f.events {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	views := make([]*models.EventView, 0, len(ids))
	for _, id := range ids {
		views = append(views, f.view(f.events[id]))
	}
	return views, nil
}

func (f *fakeEventsRepo) Update(ctx context.Context, e *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.events[e.ID]
	if !ok {
		return common.ErrNotFound
	}
	// created_by is not part of the update statement.
	creator := stored.CreatedBy
	cp := *e
	cp.CreatedBy = creator
	f.events[e.ID] = &cp
	return nil
}

func (f *fakeEventsRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.events[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.events, id)
	delete(f.attendees, id)
	return nil
}

func (f *fakeEventsRepo) AddAttendee(ctx context.Context, eventID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, uid := range f.attendees[eventID] {
		if uid == userID {
			return false, nil
		}
	}
	f.attendees[eventID] = append(f.attendees[eventID], userID)
	return true, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	e *fakeEventsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Events(db dbx.DBTX) eventsrepo.Repository     { return m.e }

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: time.Hour,
	}
}

// newFakes returns a repo manager over fresh fakes plus a sqlmock database
// handle for the transaction plumbing.
func newFakes(t interface {
	Helper()
	Fatalf(format string, args ...any)
}) (*fakeRepoManager, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return &fakeRepoManager{u: newFakeUsersRepo(), e: newFakeEventsRepo()}, db, mock
}
