package events

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Service implements event listing and creator-owned mutation. Every
// mutation runs inside a repository transaction so partial writes never
// persist.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "events").Logger(),
	}
}

// CreateInput carries the raw create request fields. Date and Time are wire
// strings so format validation stays in one place.
type CreateInput struct {
	Title       string
	Description *string
	Date        string
	Time        *string
	Location    *string
	CreatedBy   int64
}

// UpdateInput carries a partial update. Nil fields keep their prior value.
// A provided-but-empty Time clears the stored time.
type UpdateInput struct {
	Title       *string
	Description *string
	Date        *string
	Time        *string
	Location    *string
}

func (s *Service) List(ctx context.Context, filters Filters) ([]Event, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (*Event, error) {
	return s.repo.Get(ctx, id)
}

// Create validates the input, checks that the creator resolves to a real
// user, and persists the event. An unknown creator yields ErrCreatorNotFound.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Event, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ValidationError{Field: "title", Message: "is required"}
	}
	if strings.TrimSpace(input.Date) == "" {
		return nil, ValidationError{Field: "date", Message: "is required"}
	}

	date, err := parseDate(input.Date)
	if err != nil {
		return nil, err
	}

	var eventTime *time.Time
	if input.Time != nil && strings.TrimSpace(*input.Time) != "" {
		parsed, err := parseTime(*input.Time)
		if err != nil {
			return nil, err
		}
		eventTime = &parsed
	}

	var created *Event
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		exists, err := repo.CreatorExists(ctx, input.CreatedBy)
		if err != nil {
			return err
		}
		if !exists {
			return ErrCreatorNotFound
		}

		created, err = repo.Create(ctx, CreateParams{
			Title:       input.Title,
			Description: input.Description,
			Date:        date,
			Time:        eventTime,
			Location:    input.Location,
			CreatedBy:   input.CreatedBy,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("event_id", created.ID).
		Int64("user_id", created.CreatedBy).
		Msg("event created")
	return created, nil
}

// Update applies a partial update after the ownership check. Fields absent
// from the input keep their prior value; date and time formats are
// re-validated before anything is written.
func (s *Service) Update(ctx context.Context, id, callerID int64, input UpdateInput) (*Event, error) {
	var updated *Event
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		event, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if event.CreatedBy != callerID {
			return ErrForbidden
		}

		params := UpdateParams{
			ID:          event.ID,
			Title:       event.Title,
			Description: event.Description,
			Date:        event.Date,
			Time:        event.Time,
			Location:    event.Location,
		}

		if input.Title != nil {
			params.Title = *input.Title
		}
		if input.Description != nil {
			params.Description = input.Description
		}
		if input.Location != nil {
			params.Location = input.Location
		}
		if input.Date != nil && strings.TrimSpace(*input.Date) != "" {
			date, err := parseDate(*input.Date)
			if err != nil {
				return err
			}
			params.Date = date
		}
		if input.Time != nil {
			if strings.TrimSpace(*input.Time) == "" {
				params.Time = nil
			} else {
				parsed, err := parseTime(*input.Time)
				if err != nil {
					return err
				}
				params.Time = &parsed
			}
		}

		updated, err = repo.Update(ctx, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an event after the ownership check. Attendance rows go
// with it via the store's cascade.
func (s *Service) Delete(ctx context.Context, id, callerID int64) error {
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		event, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if event.CreatedBy != callerID {
			return ErrForbidden
		}
		return repo.Delete(ctx, event.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("event_id", id).Msg("event deleted")
	return nil
}
