package domain

import (
	"fmt"
	"sync"
	"time"
	_ "time/tzdata" // zone data for hosts without a system tz database
)

// DefaultTimeZone is the zone used to decide what "today" means.
const DefaultTimeZone = "America/Chicago"

const (
	dateLayout = "2006-01-02"
	day        = 24 * time.Hour
)

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock is a manually driven clock for tests and replays.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock frozen at now.
func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now.UTC()}
}

// Now returns the frozen instant.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t.UTC()
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// TimeService answers calendar questions in a single fixed time zone.
type TimeService struct {
	clock    Clock
	location *time.Location
}

// NewTimeService creates a time service for the named IANA zone.
// An empty name selects DefaultTimeZone.
func NewTimeService(clock Clock, zone string) (*TimeService, error) {
	if clock == nil {
		clock = SystemClock{}
	}
	if zone == "" {
		zone = DefaultTimeZone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone %q: %w", zone, err)
	}
	return &TimeService{clock: clock, location: loc}, nil
}

// MustTimeService is NewTimeService for callers with a known-good zone.
func MustTimeService(clock Clock, zone string) *TimeService {
	ts, err := NewTimeService(clock, zone)
	if err != nil {
		panic(err)
	}
	return ts
}

// Now returns the current instant.
func (s *TimeService) Now() time.Time {
	return s.clock.Now()
}

// Clock returns the underlying clock.
func (s *TimeService) Clock() Clock {
	return s.clock
}

// Location returns the configured zone.
func (s *TimeService) Location() *time.Location {
	return s.location
}

// Today returns the local calendar date as YYYY-MM-DD.
func (s *TimeService) Today() string {
	return s.DateOf(s.clock.Now())
}

// DateOf returns the local calendar date of t as YYYY-MM-DD.
func (s *TimeService) DateOf(t time.Time) string {
	return t.In(s.location).Format(dateLayout)
}

// DaysSince returns the fractional days elapsed from t to now, never negative.
func DaysSince(now, t time.Time) float64 {
	d := float64(now.Sub(t)) / float64(day)
	if d < 0 {
		return 0
	}
	return d
}

// DaysUntil returns the fractional days from now to t; negative when t has passed.
func DaysUntil(now, t time.Time) float64 {
	return float64(t.Sub(now)) / float64(day)
}
