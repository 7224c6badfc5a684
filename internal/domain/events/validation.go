package events

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateFormat is the wire format for event dates.
	DateFormat = "2006-01-02"
	// TimeFormat is the wire format for event times.
	TimeFormat = "15:04:05"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(DateFormat, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, ValidationError{Field: "date", Message: "must match YYYY-MM-DD"}
	}
	return parsed, nil
}

func parseTime(value string) (time.Time, error) {
	parsed, err := time.Parse(TimeFormat, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, ValidationError{Field: "time", Message: "must match HH:MM:SS"}
	}
	return parsed, nil
}

// FormatTime renders a time-of-day value in wire format, or nil when absent.
func FormatTime(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.Format(TimeFormat)
	return &formatted
}
