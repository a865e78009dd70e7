package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/focusos/internal/activity"
	"github.com/felixgeelhaar/focusos/internal/productivity/domain/task"
	sharedApplication "github.com/felixgeelhaar/focusos/internal/shared/application"
	"github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
)

// SnoozeTaskCommand hides a task from scoring until Until.
type SnoozeTaskCommand struct {
	TaskID uuid.UUID
	UserID uuid.UUID
	Until  time.Time
}

// SnoozeTaskHandler handles the SnoozeTaskCommand.
type SnoozeTaskHandler struct {
	taskRepo task.Repository
	recorder activity.Recorder
	scores   ScoreInvalidator
	uow      sharedApplication.UnitOfWork
	clock    domain.Clock
}

// NewSnoozeTaskHandler creates a new SnoozeTaskHandler.
func NewSnoozeTaskHandler(taskRepo task.Repository, recorder activity.Recorder, scores ScoreInvalidator, uow sharedApplication.UnitOfWork, clock domain.Clock) *SnoozeTaskHandler {
	return &SnoozeTaskHandler{taskRepo: taskRepo, recorder: recorder, scores: scores, uow: uow, clock: clock}
}

// Handle executes the SnoozeTaskCommand.
func (h *SnoozeTaskHandler) Handle(ctx context.Context, cmd SnoozeTaskCommand) error {
	if cmd.Until.IsZero() {
		return task.ErrSnoozeRequired
	}
	var events []domain.DomainEvent

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		t, err := h.taskRepo.FindByID(txCtx, cmd.UserID, cmd.TaskID)
		if err != nil {
			return err
		}
		if err := t.Snooze(cmd.Until, h.clock.Now()); err != nil {
			return err
		}
		if err := h.taskRepo.Save(txCtx, t); err != nil {
			return err
		}
		events = t.DomainEvents()
		return h.recorder.Record(txCtx, cmd.UserID, events...)
	})
	if err != nil {
		return fmt.Errorf("failed to snooze task: %w", err)
	}

	_ = h.scores.Invalidate(ctx, cmd.UserID)
	h.recorder.Announce(ctx, events...)
	return nil
}
