package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	eventIDs map[int64]bool
	userIDs  map[int64]bool
	rows     []Attendance
	names    map[int64]string
	nextID   int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		eventIDs: make(map[int64]bool),
		userIDs:  make(map[int64]bool),
		names:    make(map[int64]string),
		nextID:   1,
	}
}

func (r *fakeRepo) addEvent(id int64) { r.eventIDs[id] = true }

func (r *fakeRepo) addUser(id int64, username string) {
	r.userIDs[id] = true
	r.names[id] = username
}

func (r *fakeRepo) EventExists(_ context.Context, eventID int64) (bool, error) {
	return r.eventIDs[eventID], nil
}

func (r *fakeRepo) UserExists(_ context.Context, userID int64) (bool, error) {
	return r.userIDs[userID], nil
}

func (r *fakeRepo) Exists(_ context.Context, eventID, userID int64) (bool, error) {
	for _, row := range r.rows {
		if row.EventID == eventID && row.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) Create(_ context.Context, eventID, userID int64) (*Attendance, error) {
	row := Attendance{ID: r.nextID, EventID: eventID, UserID: userID, RegisteredAt: time.Now()}
	r.nextID++
	r.rows = append(r.rows, row)
	return &row, nil
}

func (r *fakeRepo) ListForEvent(_ context.Context, eventID int64) ([]Attendee, error) {
	attendees := make([]Attendee, 0)
	for _, row := range r.rows {
		if row.EventID != eventID {
			continue
		}
		attendees = append(attendees, Attendee{
			UserID:       row.UserID,
			Username:     r.names[row.UserID],
			RegisteredAt: row.RegisteredAt,
		})
	}
	return attendees, nil
}

func (r *fakeRepo) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, r)
}

func newTestService(repo Repository) *Service {
	return NewService(repo, zerolog.Nop())
}

func TestRegisterSuccess(t *testing.T) {
	repo := newFakeRepo()
	repo.addEvent(1)
	repo.addUser(7, "alice")
	service := newTestService(repo)

	record, err := service.Register(context.Background(), 1, 7)

	require.NoError(t, err)
	require.Equal(t, int64(1), record.EventID)
	require.Equal(t, int64(7), record.UserID)
	require.False(t, record.RegisteredAt.IsZero())
}

func TestRegisterUnknownEvent(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(7, "alice")
	service := newTestService(repo)

	_, err := service.Register(context.Background(), 1, 7)
	require.ErrorIs(t, err, ErrEventNotFound)
	require.Empty(t, repo.rows)
}

func TestRegisterUnknownUser(t *testing.T) {
	repo := newFakeRepo()
	repo.addEvent(1)
	service := newTestService(repo)

	_, err := service.Register(context.Background(), 1, 7)
	require.ErrorIs(t, err, ErrUserNotFound)
	require.Empty(t, repo.rows)
}

func TestRegisterTwiceIsRejected(t *testing.T) {
	repo := newFakeRepo()
	repo.addEvent(1)
	repo.addUser(7, "alice")
	service := newTestService(repo)

	_, err := service.Register(context.Background(), 1, 7)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), 1, 7)
	require.ErrorIs(t, err, ErrAlreadyRegistered)
	require.Len(t, repo.rows, 1)
}

func TestRegisterSameUserDifferentEvents(t *testing.T) {
	repo := newFakeRepo()
	repo.addEvent(1)
	repo.addEvent(2)
	repo.addUser(7, "alice")
	service := newTestService(repo)

	_, err := service.Register(context.Background(), 1, 7)
	require.NoError(t, err)
	_, err = service.Register(context.Background(), 2, 7)
	require.NoError(t, err)
	require.Len(t, repo.rows, 2)
}

func TestListForEvent(t *testing.T) {
	repo := newFakeRepo()
	repo.addEvent(1)
	service := newTestService(repo)
	for i := int64(1); i <= 3; i++ {
		repo.addUser(i, fmt.Sprintf("user%d", i))
		_, err := service.Register(context.Background(), 1, i)
		require.NoError(t, err)
	}

	attendees, err := service.ListForEvent(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, attendees, 3)
	require.Equal(t, "user1", attendees[0].Username)
}

func TestListForUnknownEvent(t *testing.T) {
	service := newTestService(newFakeRepo())

	_, err := service.ListForEvent(context.Background(), 42)
	require.ErrorIs(t, err, ErrEventNotFound)
}

func TestListForEventWithoutAttendees(t *testing.T) {
	repo := newFakeRepo()
	repo.addEvent(1)
	service := newTestService(repo)

	attendees, err := service.ListForEvent(context.Background(), 1)
	require.NoError(t, err)
	require.Empty(t, attendees)
}
