package postgres

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const uniqueViolationCode = "23505"

// isUniqueViolation reports whether err is a unique-constraint violation,
// optionally restricted to a named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != uniqueViolationCode {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

func timeOfDayToPg(value *time.Time) pgtype.Time {
	if value == nil {
		return pgtype.Time{}
	}
	micros := int64(value.Hour()*3600+value.Minute()*60+value.Second()) * 1_000_000
	return pgtype.Time{Microseconds: micros, Valid: true}
}

func timeOfDayFromPg(value pgtype.Time) *time.Time {
	if !value.Valid {
		return nil
	}
	seconds := value.Microseconds / 1_000_000
	t := time.Date(0, time.January, 1, int(seconds/3600), int(seconds/60%60), int(seconds%60), 0, time.UTC)
	return &t
}

func dateToPg(value time.Time) pgtype.Date {
	return pgtype.Date{Time: value, Valid: true}
}
