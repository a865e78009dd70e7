// Package domain models focus sessions: timed stretches of work on one task.
package domain

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("focus session not found")

// Mode names how the user is working. Any upper-case label is accepted.
type Mode string

const ModeSingleThread Mode = "SINGLE_THREAD"

// ParseMode normalizes a mode label. Empty selects ModeSingleThread.
func ParseMode(s string) Mode {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return ModeSingleThread
	}
	return Mode(s)
}

// Session is one focus session.
type Session struct {
	sharedDomain.BaseAggregateRoot
	userID          uuid.UUID
	taskID          *uuid.UUID
	mode            Mode
	startedAt       time.Time
	endedAt         *time.Time
	durationSeconds *int
	outcome         string
}

// StartSession opens a session at now.
func StartSession(userID uuid.UUID, taskID *uuid.UUID, mode Mode, now time.Time) *Session {
	if mode == "" {
		mode = ModeSingleThread
	}
	s := &Session{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(now),
		userID:            userID,
		taskID:            taskID,
		mode:              mode,
		startedAt:         now,
	}
	s.AddDomainEvent(NewSessionStarted(s.ID(), taskID, mode, now))
	return s
}

func (s *Session) UserID() uuid.UUID     { return s.userID }
func (s *Session) TaskID() *uuid.UUID    { return s.taskID }
func (s *Session) Mode() Mode            { return s.mode }
func (s *Session) StartedAt() time.Time  { return s.startedAt }
func (s *Session) EndedAt() *time.Time   { return s.endedAt }
func (s *Session) DurationSeconds() *int { return s.durationSeconds }
func (s *Session) Outcome() string       { return s.outcome }
func (s *Session) IsActive() bool        { return s.endedAt == nil }

// Stop ends the session. The duration is fixed by the first stop; later
// stops only replace the outcome when one is given.
func (s *Session) Stop(outcome string, now time.Time) {
	if outcome = strings.TrimSpace(outcome); outcome != "" {
		s.outcome = outcome
	}
	s.Touch(now)
	if s.endedAt != nil {
		return
	}
	ended := now
	seconds := int(math.Round(now.Sub(s.startedAt).Seconds()))
	if seconds < 0 {
		seconds = 0
	}
	s.endedAt = &ended
	s.durationSeconds = &seconds
	s.AddDomainEvent(NewSessionStopped(s.ID(), s.taskID, seconds, s.outcome, now))
}

// Snapshot is the persisted form of a Session.
type Snapshot struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	TaskID          *uuid.UUID
	Mode            Mode
	StartedAt       time.Time
	EndedAt         *time.Time
	DurationSeconds *int
	Outcome         string
}

// Rehydrate rebuilds a Session from storage.
func Rehydrate(s Snapshot) *Session {
	updated := s.StartedAt
	if s.EndedAt != nil {
		updated = *s.EndedAt
	}
	return &Session{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(
			sharedDomain.RehydrateBaseEntity(s.ID, s.StartedAt, updated)),
		userID:          s.UserID,
		taskID:          s.TaskID,
		mode:            s.Mode,
		startedAt:       s.StartedAt,
		endedAt:         s.EndedAt,
		durationSeconds: s.DurationSeconds,
		outcome:         s.Outcome,
	}
}

// Repository persists focus sessions.
type Repository interface {
	Save(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Session, error)
	// ListRecent returns sessions newest first.
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*Session, error)
}
