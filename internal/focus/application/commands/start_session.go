// Package commands holds the focus session write handlers.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/focusos/internal/activity"
	"github.com/felixgeelhaar/focusos/internal/focus/domain"
	"github.com/felixgeelhaar/focusos/internal/productivity/domain/task"
	sharedApplication "github.com/felixgeelhaar/focusos/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
)

// StartSessionCommand opens a focus session, optionally on a task.
type StartSessionCommand struct {
	UserID uuid.UUID
	TaskID *uuid.UUID
	Mode   string
}

// SessionResult describes a session after a start or stop.
type SessionResult struct {
	SessionID       uuid.UUID   `json:"id"`
	TaskID          *uuid.UUID  `json:"task_id,omitempty"`
	Mode            domain.Mode `json:"mode"`
	StartedAt       time.Time   `json:"started_at"`
	EndedAt         *time.Time  `json:"ended_at,omitempty"`
	DurationSeconds *int        `json:"duration_seconds,omitempty"`
	Outcome         string      `json:"outcome,omitempty"`
}

// StartSessionHandler handles StartSessionCommand.
type StartSessionHandler struct {
	sessions domain.Repository
	tasks    task.Repository
	recorder activity.Recorder
	uow      sharedApplication.UnitOfWork
	clock    sharedDomain.Clock
}

// NewStartSessionHandler creates a new StartSessionHandler.
func NewStartSessionHandler(
	sessions domain.Repository,
	tasks task.Repository,
	recorder activity.Recorder,
	uow sharedApplication.UnitOfWork,
	clock sharedDomain.Clock,
) *StartSessionHandler {
	return &StartSessionHandler{
		sessions: sessions,
		tasks:    tasks,
		recorder: recorder,
		uow:      uow,
		clock:    clock,
	}
}

// Handle starts the session. A task, when given, must belong to the user.
func (h *StartSessionHandler) Handle(ctx context.Context, cmd StartSessionCommand) (*SessionResult, error) {
	var (
		session *domain.Session
		events  []sharedDomain.DomainEvent
	)
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if cmd.TaskID != nil {
			if _, err := h.tasks.FindByID(txCtx, cmd.UserID, *cmd.TaskID); err != nil {
				return err
			}
		}
		session = domain.StartSession(cmd.UserID, cmd.TaskID, domain.ParseMode(cmd.Mode), h.clock.Now())
		if err := h.sessions.Save(txCtx, session); err != nil {
			return err
		}
		events = session.DomainEvents()
		return h.recorder.Record(txCtx, cmd.UserID, events...)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start focus session: %w", err)
	}

	h.recorder.Announce(ctx, events...)
	return toResult(session), nil
}
