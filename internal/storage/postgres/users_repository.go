package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherhub/server/internal/domain/users"
	"github.com/jackc/pgx/v5"
)

var _ users.Repository = (*UserRepository)(nil)

const userColumns = `id, username, email, password_hash, created_at`

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*users.User, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT `+userColumns+`
  FROM users
 WHERE id = $1
`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT `+userColumns+`
  FROM users
 WHERE username = $1
`, username)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT `+userColumns+`
  FROM users
 WHERE email = $1
`, email)
	return scanUser(row)
}

func (r *UserRepository) Create(ctx context.Context, params users.CreateParams) (*users.User, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO users (username, email, password_hash)
VALUES ($1, $2, $3)
RETURNING `+userColumns+`
`, params.Username, params.Email, params.PasswordHash)

	user, err := scanUser(row)
	if err != nil {
		// A concurrent registration can still trip the unique constraints.
		if isUniqueViolation(err, "users_username_key") {
			return nil, users.ErrUsernameTaken
		}
		if isUniqueViolation(err, "users_email_key") {
			return nil, users.ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) WithTx(ctx context.Context, fn func(context.Context, users.Repository) error) error {
	return runInTx(ctx, r.pool, r.tx, func(tx pgx.Tx) error {
		return fn(ctx, &UserRepository{pool: r.pool, tx: tx})
	})
}

func (r *UserRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}

func scanUser(row pgx.Row) (*users.User, error) {
	var user users.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, users.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}
