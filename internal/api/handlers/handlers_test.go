package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gatherhub/server/internal/domain/attendance"
	"github.com/gatherhub/server/internal/domain/events"
	"github.com/gatherhub/server/internal/domain/users"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fakeStore backs all three domain repositories for handler tests.
type fakeStore struct {
	users      map[int64]*users.User
	events     map[int64]*events.Event
	attendance []attendance.Attendance
	nextUser   int64
	nextEvent  int64
	nextAtt    int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[int64]*users.User),
		events:    make(map[int64]*events.Event),
		nextUser:  1,
		nextEvent: 1,
		nextAtt:   1,
	}
}

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*users.User, error) {
	user, ok := r.store.users[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*users.User, error) {
	for _, user := range r.store.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, users.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*users.User, error) {
	for _, user := range r.store.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, users.ErrNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, params users.CreateParams) (*users.User, error) {
	user := &users.User{
		ID:           r.store.nextUser,
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		CreatedAt:    time.Now(),
	}
	r.store.nextUser++
	r.store.users[user.ID] = user
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) WithTx(ctx context.Context, fn func(context.Context, users.Repository) error) error {
	return fn(ctx, r)
}

type fakeEventRepo struct{ store *fakeStore }

func (r *fakeEventRepo) List(_ context.Context, filters events.Filters) ([]events.Event, error) {
	items := make([]events.Event, 0)
	for _, event := range r.store.events {
		if filters.Query != "" && !strings.Contains(strings.ToLower(event.Title), strings.ToLower(filters.Query)) {
			continue
		}
		if filters.Location != "" {
			if event.Location == nil || !strings.Contains(strings.ToLower(*event.Location), strings.ToLower(filters.Location)) {
				continue
			}
		}
		items = append(items, *event)
	}
	return items, nil
}

func (r *fakeEventRepo) Get(_ context.Context, id int64) (*events.Event, error) {
	event, ok := r.store.events[id]
	if !ok {
		return nil, events.ErrNotFound
	}
	copied := *event
	return &copied, nil
}

func (r *fakeEventRepo) Create(_ context.Context, params events.CreateParams) (*events.Event, error) {
	now := time.Now()
	event := &events.Event{
		ID:          r.store.nextEvent,
		Title:       params.Title,
		Description: params.Description,
		Date:        params.Date,
		Time:        params.Time,
		Location:    params.Location,
		CreatedBy:   params.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.store.nextEvent++
	r.store.events[event.ID] = event
	copied := *event
	return &copied, nil
}

func (r *fakeEventRepo) Update(_ context.Context, params events.UpdateParams) (*events.Event, error) {
	event, ok := r.store.events[params.ID]
	if !ok {
		return nil, events.ErrNotFound
	}
	event.Title = params.Title
	event.Description = params.Description
	event.Date = params.Date
	event.Time = params.Time
	event.Location = params.Location
	event.UpdatedAt = time.Now()
	copied := *event
	return &copied, nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.store.events[id]; !ok {
		return events.ErrNotFound
	}
	delete(r.store.events, id)
	return nil
}

func (r *fakeEventRepo) CreatorExists(_ context.Context, userID int64) (bool, error) {
	_, ok := r.store.users[userID]
	return ok, nil
}

func (r *fakeEventRepo) WithTx(ctx context.Context, fn func(context.Context, events.Repository) error) error {
	return fn(ctx, r)
}

type fakeAttendanceRepo struct{ store *fakeStore }

func (r *fakeAttendanceRepo) EventExists(_ context.Context, eventID int64) (bool, error) {
	_, ok := r.store.events[eventID]
	return ok, nil
}

func (r *fakeAttendanceRepo) UserExists(_ context.Context, userID int64) (bool, error) {
	_, ok := r.store.users[userID]
	return ok, nil
}

func (r *fakeAttendanceRepo) Exists(_ context.Context, eventID, userID int64) (bool, error) {
	for _, row := range r.store.attendance {
		if row.EventID == eventID && row.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAttendanceRepo) Create(_ context.Context, eventID, userID int64) (*attendance.Attendance, error) {
	row := attendance.Attendance{
		ID:           r.store.nextAtt,
		EventID:      eventID,
		UserID:       userID,
		RegisteredAt: time.Now(),
	}
	r.store.nextAtt++
	r.store.attendance = append(r.store.attendance, row)
	return &row, nil
}

func (r *fakeAttendanceRepo) ListForEvent(_ context.Context, eventID int64) ([]attendance.Attendee, error) {
	attendees := make([]attendance.Attendee, 0)
	for _, row := range r.store.attendance {
		if row.EventID != eventID {
			continue
		}
		username := ""
		if user, ok := r.store.users[row.UserID]; ok {
			username = user.Username
		}
		attendees = append(attendees, attendance.Attendee{
			UserID:       row.UserID,
			Username:     username,
			RegisteredAt: row.RegisteredAt,
		})
	}
	return attendees, nil
}

func (r *fakeAttendanceRepo) WithTx(ctx context.Context, fn func(context.Context, attendance.Repository) error) error {
	return fn(ctx, r)
}

type testEnv struct {
	store      *fakeStore
	auth       *AuthHandler
	events     *EventsHandler
	attendance *AttendanceHandler
}

func newTestEnv() *testEnv {
	store := newFakeStore()
	logger := zerolog.Nop()
	return &testEnv{
		store:      store,
		auth:       NewAuthHandler(users.NewService(&fakeUserRepo{store: store}, logger)),
		events:     NewEventsHandler(events.NewService(&fakeEventRepo{store: store}, logger)),
		attendance: NewAttendanceHandler(attendance.NewService(&fakeAttendanceRepo{store: store}, logger)),
	}
}

func (env *testEnv) addUser(t *testing.T, username, email, password string) *users.User {
	t.Helper()
	user, err := env.auth.Users.Register(context.Background(), username, email, password)
	require.NoError(t, err)
	return user
}

func (env *testEnv) addEvent(t *testing.T, title string, createdBy int64) *events.Event {
	t.Helper()
	event, err := env.events.Service.Create(context.Background(), events.CreateInput{
		Title:     title,
		Date:      "2025-06-01",
		CreatedBy: createdBy,
	})
	require.NoError(t, err)
	return event
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withPathID(r *http.Request, id int64) *http.Request {
	r.SetPathValue("id", strconv.FormatInt(id, 10))
	return r
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &body)
	return body.Message
}
