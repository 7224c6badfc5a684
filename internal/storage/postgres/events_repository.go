package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherhub/server/internal/domain/events"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var _ events.Repository = (*EventRepository)(nil)

const eventColumns = `id, title, description, event_date, event_time, location, created_by_user_id, created_at, updated_at`

func (r *EventRepository) List(ctx context.Context, filters events.Filters) ([]events.Event, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT `+eventColumns+`
  FROM events
 WHERE ($1 = '' OR title ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
   AND ($2 = '' OR location ILIKE '%' || $2 || '%')
 ORDER BY event_date ASC, event_time ASC NULLS LAST
`, filters.Query, filters.Location)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	items := make([]events.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return items, nil
}

func (r *EventRepository) Get(ctx context.Context, id int64) (*events.Event, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT `+eventColumns+`
  FROM events
 WHERE id = $1
`, id)
	return scanEvent(row)
}

func (r *EventRepository) Create(ctx context.Context, params events.CreateParams) (*events.Event, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO events (title, description, event_date, event_time, location, created_by_user_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING `+eventColumns+`
`,
		params.Title,
		params.Description,
		dateToPg(params.Date),
		timeOfDayToPg(params.Time),
		params.Location,
		params.CreatedBy,
	)
	return scanEvent(row)
}

func (r *EventRepository) Update(ctx context.Context, params events.UpdateParams) (*events.Event, error) {
	row := r.queryer().QueryRow(ctx, `
UPDATE events
   SET title = $2,
       description = $3,
       event_date = $4,
       event_time = $5,
       location = $6,
       updated_at = now()
 WHERE id = $1
RETURNING `+eventColumns+`
`,
		params.ID,
		params.Title,
		params.Description,
		dateToPg(params.Date),
		timeOfDayToPg(params.Time),
		params.Location,
	)
	return scanEvent(row)
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.queryer().Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return events.ErrNotFound
	}
	return nil
}

func (r *EventRepository) CreatorExists(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.queryer().QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check creator: %w", err)
	}
	return exists, nil
}

func (r *EventRepository) WithTx(ctx context.Context, fn func(context.Context, events.Repository) error) error {
	return runInTx(ctx, r.pool, r.tx, func(tx pgx.Tx) error {
		return fn(ctx, &EventRepository{pool: r.pool, tx: tx})
	})
}

func (r *EventRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}

func scanEvent(row pgx.Row) (*events.Event, error) {
	var (
		event     events.Event
		eventDate pgtype.Date
		eventTime pgtype.Time
	)
	if err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&eventDate,
		&eventTime,
		&event.Location,
		&event.CreatedBy,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}
	event.Date = eventDate.Time
	event.Time = timeOfDayFromPg(eventTime)
	return &event, nil
}
