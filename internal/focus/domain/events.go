package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	AggregateType     = "FocusSession"
	RoutingKeyStarted = "focus.started"
	RoutingKeyStopped = "focus.stopped"
)

// SessionStarted is emitted when a session opens.
type SessionStarted struct {
	sharedDomain.BaseEvent
	TaskID *uuid.UUID `json:"task_id,omitempty"`
	Mode   Mode       `json:"mode"`
}

func NewSessionStarted(sessionID uuid.UUID, taskID *uuid.UUID, mode Mode, at time.Time) *SessionStarted {
	return &SessionStarted{
		BaseEvent: sharedDomain.NewBaseEvent(sessionID, AggregateType, RoutingKeyStarted, at),
		TaskID:    taskID,
		Mode:      mode,
	}
}

// SessionStopped is emitted on the first stop only.
type SessionStopped struct {
	sharedDomain.BaseEvent
	TaskID          *uuid.UUID `json:"task_id,omitempty"`
	DurationSeconds int        `json:"duration_seconds"`
	Outcome         string     `json:"outcome,omitempty"`
}

func NewSessionStopped(sessionID uuid.UUID, taskID *uuid.UUID, seconds int, outcome string, at time.Time) *SessionStopped {
	return &SessionStopped{
		BaseEvent:       sharedDomain.NewBaseEvent(sessionID, AggregateType, RoutingKeyStopped, at),
		TaskID:          taskID,
		DurationSeconds: seconds,
		Outcome:         outcome,
	}
}
