package postgres

import (
	"context"
	"fmt"

	"github.com/gatherhub/server/internal/domain/attendance"
	"github.com/jackc/pgx/v5"
)

var _ attendance.Repository = (*AttendanceRepository)(nil)

func (r *AttendanceRepository) EventExists(ctx context.Context, eventID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, eventID)
}

func (r *AttendanceRepository) UserExists(ctx context.Context, userID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID)
}

func (r *AttendanceRepository) Exists(ctx context.Context, eventID, userID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM attendees WHERE event_id = $1 AND user_id = $2)`, eventID, userID)
}

func (r *AttendanceRepository) Create(ctx context.Context, eventID, userID int64) (*attendance.Attendance, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO attendees (event_id, user_id)
VALUES ($1, $2)
RETURNING id, event_id, user_id, registration_date
`, eventID, userID)

	var record attendance.Attendance
	if err := row.Scan(&record.ID, &record.EventID, &record.UserID, &record.RegisteredAt); err != nil {
		// The unique constraint settles races between concurrent registrations.
		if isUniqueViolation(err, "attendees_event_id_user_id_key") {
			return nil, attendance.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("create attendance: %w", err)
	}
	return &record, nil
}

func (r *AttendanceRepository) ListForEvent(ctx context.Context, eventID int64) ([]attendance.Attendee, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT a.user_id, u.username, a.registration_date
  FROM attendees a
  JOIN users u ON u.id = a.user_id
 WHERE a.event_id = $1
 ORDER BY a.registration_date ASC
`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	defer rows.Close()

	items := make([]attendance.Attendee, 0)
	for rows.Next() {
		var item attendance.Attendee
		if err := rows.Scan(&item.UserID, &item.Username, &item.RegisteredAt); err != nil {
			return nil, fmt.Errorf("scan attendee: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendees: %w", err)
	}
	return items, nil
}

func (r *AttendanceRepository) WithTx(ctx context.Context, fn func(context.Context, attendance.Repository) error) error {
	return runInTx(ctx, r.pool, r.tx, func(tx pgx.Tx) error {
		return fn(ctx, &AttendanceRepository{pool: r.pool, tx: tx})
	})
}

func (r *AttendanceRepository) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var exists bool
	if err := r.queryer().QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("existence check: %w", err)
	}
	return exists, nil
}

func (r *AttendanceRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}
