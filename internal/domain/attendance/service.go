package attendance

import (
	"context"

	"github.com/rs/zerolog"
)

// Service records and lists event attendance.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "attendance").Logger(),
	}
}

// Register records that a user attends an event. It fails with
// ErrEventNotFound or ErrUserNotFound when either side is absent, and with
// ErrAlreadyRegistered when the pair already exists. The unique constraint
// in the store decides the winner between concurrent registrations.
func (s *Service) Register(ctx context.Context, eventID, userID int64) (*Attendance, error) {
	var created *Attendance
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		eventExists, err := repo.EventExists(ctx, eventID)
		if err != nil {
			return err
		}
		if !eventExists {
			return ErrEventNotFound
		}

		userExists, err := repo.UserExists(ctx, userID)
		if err != nil {
			return err
		}
		if !userExists {
			return ErrUserNotFound
		}

		taken, err := repo.Exists(ctx, eventID, userID)
		if err != nil {
			return err
		}
		if taken {
			return ErrAlreadyRegistered
		}

		created, err = repo.Create(ctx, eventID, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("event_id", eventID).
		Int64("user_id", userID).
		Msg("attendance registered")
	return created, nil
}

// ListForEvent returns the attendees of an event joined to their usernames.
// Rows whose user no longer resolves are omitted by the join.
func (s *Service) ListForEvent(ctx context.Context, eventID int64) ([]Attendee, error) {
	exists, err := s.repo.EventExists(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrEventNotFound
	}
	return s.repo.ListForEvent(ctx, eventID)
}
