package commands

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/focusos/internal/activity"
	"github.com/felixgeelhaar/focusos/internal/focus/domain"
	sharedApplication "github.com/felixgeelhaar/focusos/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
)

// StopSessionCommand ends a focus session.
type StopSessionCommand struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
	Outcome   string
}

// StopSessionHandler handles StopSessionCommand.
type StopSessionHandler struct {
	sessions domain.Repository
	recorder activity.Recorder
	uow      sharedApplication.UnitOfWork
	clock    sharedDomain.Clock
}

// NewStopSessionHandler creates a new StopSessionHandler.
func NewStopSessionHandler(
	sessions domain.Repository,
	recorder activity.Recorder,
	uow sharedApplication.UnitOfWork,
	clock sharedDomain.Clock,
) *StopSessionHandler {
	return &StopSessionHandler{
		sessions: sessions,
		recorder: recorder,
		uow:      uow,
		clock:    clock,
	}
}

// Handle stops the session. Stopping twice is allowed and keeps the first
// duration.
func (h *StopSessionHandler) Handle(ctx context.Context, cmd StopSessionCommand) (*SessionResult, error) {
	var (
		session *domain.Session
		events  []sharedDomain.DomainEvent
	)
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		var err error
		session, err = h.sessions.FindByID(txCtx, cmd.UserID, cmd.SessionID)
		if err != nil {
			return err
		}
		session.Stop(cmd.Outcome, h.clock.Now())
		if err := h.sessions.Save(txCtx, session); err != nil {
			return err
		}
		events = session.DomainEvents()
		return h.recorder.Record(txCtx, cmd.UserID, events...)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to stop focus session: %w", err)
	}

	h.recorder.Announce(ctx, events...)
	return toResult(session), nil
}

func toResult(s *domain.Session) *SessionResult {
	return &SessionResult{
		SessionID:       s.ID(),
		TaskID:          s.TaskID(),
		Mode:            s.Mode(),
		StartedAt:       s.StartedAt(),
		EndedAt:         s.EndedAt(),
		DurationSeconds: s.DurationSeconds(),
		Outcome:         s.Outcome(),
	}
}
