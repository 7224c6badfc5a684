package events

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("event not found")

	// ErrForbidden is returned when the caller is not the event's creator.
	ErrForbidden = errors.New("not authorized to modify this event")

	// ErrCreatorNotFound is returned when the creator id on a create request
	// does not resolve to an existing user.
	ErrCreatorNotFound = errors.New("creator user not found")
)

type Event struct {
	ID          int64
	Title       string
	Description *string
	Date        time.Time
	Time        *time.Time
	Location    *string
	CreatedBy   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Filters struct {
	Query    string
	Location string
}

type CreateParams struct {
	Title       string
	Description *string
	Date        time.Time
	Time        *time.Time
	Location    *string
	CreatedBy   int64
}

type UpdateParams struct {
	ID          int64
	Title       string
	Description *string
	Date        time.Time
	Time        *time.Time
	Location    *string
}

type Repository interface {
	List(ctx context.Context, filters Filters) ([]Event, error)
	Get(ctx context.Context, id int64) (*Event, error)
	Create(ctx context.Context, params CreateParams) (*Event, error)
	Update(ctx context.Context, params UpdateParams) (*Event, error)
	Delete(ctx context.Context, id int64) error

	// CreatorExists reports whether a user row exists for the given id.
	CreatorExists(ctx context.Context, userID int64) (bool, error)

	// WithTx runs fn inside a single database transaction, committing on
	// success and rolling back on any error.
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
}
