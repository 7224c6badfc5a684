package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Service handles user registration, lookup, and credential checks.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "users").Logger(),
	}
}

// FindByUsername returns the user with the given username, or ErrNotFound.
func (s *Service) FindByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// Register creates a new user with a hashed credential. It fails with
// ErrUsernameTaken or ErrEmailTaken when either field already exists; the
// unique constraints in the store back the same guarantee against
// concurrent registrations.
func (s *Service) Register(ctx context.Context, username, email, password string) (*User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var created *User
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if _, err := repo.GetByUsername(ctx, username); err == nil {
			return ErrUsernameTaken
		} else if !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("check username: %w", err)
		}

		if _, err := repo.GetByEmail(ctx, email); err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("check email: %w", err)
		}

		created, err = repo.Create(ctx, CreateParams{
			Username:     username,
			Email:        email,
			PasswordHash: hash,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("user_id", created.ID).
		Str("username", created.Username).
		Msg("user registered")
	return created, nil
}

// Authenticate verifies a username/password pair. It returns ErrNotFound
// when the username does not exist and ErrInvalidCredentials when the
// password does not verify.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
