package attendance

import (
	"context"
	"errors"
	"time"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrAlreadyRegistered = errors.New("already attending this event")
)

// Attendance links a user to an event. The (event, user) pair is unique,
// enforced by the store.
type Attendance struct {
	ID           int64
	EventID      int64
	UserID       int64
	RegisteredAt time.Time
}

// Attendee is one row of an event's attendee listing, joined to the
// user's username.
type Attendee struct {
	UserID       int64
	Username     string
	RegisteredAt time.Time
}

type Repository interface {
	EventExists(ctx context.Context, eventID int64) (bool, error)
	UserExists(ctx context.Context, userID int64) (bool, error)
	Exists(ctx context.Context, eventID, userID int64) (bool, error)
	Create(ctx context.Context, eventID, userID int64) (*Attendance, error)
	ListForEvent(ctx context.Context, eventID int64) ([]Attendee, error)

	// WithTx runs fn inside a single database transaction, committing on
	// success and rolling back on any error.
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
}
