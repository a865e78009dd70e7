package database

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Rebind rewrites ? placeholders into $1..$n for postgres. Question marks
// inside single-quoted literals are left alone.
func Rebind(driver Driver, query string) string {
	if driver != DriverPostgres {
		return query
	}
	var (
		b       strings.Builder
		n       int
		inQuote bool
	)
	b.Grow(len(query) + 8)
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// SQLiteTimeLayout is fixed width so stored timestamps sort as text.
const SQLiteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// TimeArg encodes t for the driver. SQLite stores UTC text.
func TimeArg(driver Driver, t time.Time) any {
	if driver == DriverSQLite {
		return t.UTC().Format(SQLiteTimeLayout)
	}
	return t.UTC()
}

// NullTimeArg is TimeArg for optional timestamps.
func NullTimeArg(driver Driver, t *time.Time) any {
	if t == nil {
		return nil
	}
	return TimeArg(driver, *t)
}

// NullStringArg maps "" to NULL.
func NullStringArg(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// NullUUIDArg maps nil to NULL.
func NullUUIDArg(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}

// NullIntArg maps nil to NULL.
func NullIntArg(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

// ParseNullUUID converts a nullable id column.
func ParseNullUUID(s sql.NullString) (*uuid.UUID, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s.String)
	if err != nil {
		return nil, fmt.Errorf("invalid uuid %q: %w", s.String, err)
	}
	return &id, nil
}

// IntPtr converts a nullable integer column.
func IntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

// InClause renders "column IN (...)" for SQLite or "column = ANY(?)" for
// postgres, returning the args to append.
func InClause(driver Driver, column string, values []string) (string, []any) {
	if driver == DriverPostgres {
		return column + " = ANY(?)", []any{pq.Array(values)}
	}
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(values)), ",")
	return column + " IN (" + placeholders + ")", args
}

// NullTime scans timestamps from either driver: time.Time from pgx, or the
// text SQLite hands back.
type NullTime struct {
	Time  time.Time
	Valid bool
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Scan implements sql.Scanner.
func (n *NullTime) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		n.Time, n.Valid = time.Time{}, false
		return nil
	case time.Time:
		n.Time, n.Valid = v.UTC(), true
		return nil
	case string:
		return n.parse(v)
	case []byte:
		return n.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into NullTime", value)
	}
}

func (n *NullTime) parse(s string) error {
	if s == "" {
		n.Time, n.Valid = time.Time{}, false
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			n.Time, n.Valid = t.UTC(), true
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}

// Ptr returns nil for NULL.
func (n NullTime) Ptr() *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time
	return &t
}
