package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04"
)

// ParseID parses a required UUID argument.
func ParseID(value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, errors.New("id is required")
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", value, err)
	}
	return id, nil
}

// ParseOptionalID parses a UUID flag that may be empty.
func ParseOptionalID(value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := ParseID(value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ParseWhen reads an instant as YYYY-MM-DD, YYYY-MM-DDTHH:MM (both in loc),
// RFC 3339, or a duration from now such as "3h" or "2d".
func ParseWhen(value string, now time.Time, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.ParseInLocation(dateTimeLayout, value, loc); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.ParseInLocation(dateLayout, value, loc); err == nil {
		return t.UTC(), nil
	}
	if days, ok := strings.CutSuffix(value, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil && n > 0 {
			return now.AddDate(0, 0, n).UTC(), nil
		}
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return now.Add(d).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q (use YYYY-MM-DD, YYYY-MM-DDTHH:MM, RFC 3339 or a duration like 3h / 2d)", value)
}

// When parses value against the app's clock and time zone.
func (a *App) When(value string) (time.Time, error) {
	if a.Time == nil {
		return ParseWhen(value, time.Now().UTC(), time.UTC)
	}
	return ParseWhen(value, a.Time.Now(), a.Time.Location())
}
