package commands

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/focusos/internal/activity"
	"github.com/felixgeelhaar/focusos/internal/productivity/domain/task"
	sharedApplication "github.com/felixgeelhaar/focusos/internal/shared/application"
	"github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
)

// CompleteTaskCommand contains the data needed to complete a task.
type CompleteTaskCommand struct {
	TaskID uuid.UUID
	UserID uuid.UUID
}

// CompleteTaskHandler handles the CompleteTaskCommand.
type CompleteTaskHandler struct {
	taskRepo task.Repository
	recorder activity.Recorder
	scores   ScoreInvalidator
	uow      sharedApplication.UnitOfWork
	clock    domain.Clock
}

// NewCompleteTaskHandler creates a new CompleteTaskHandler.
func NewCompleteTaskHandler(taskRepo task.Repository, recorder activity.Recorder, scores ScoreInvalidator, uow sharedApplication.UnitOfWork, clock domain.Clock) *CompleteTaskHandler {
	return &CompleteTaskHandler{taskRepo: taskRepo, recorder: recorder, scores: scores, uow: uow, clock: clock}
}

// Handle executes the CompleteTaskCommand.
func (h *CompleteTaskHandler) Handle(ctx context.Context, cmd CompleteTaskCommand) error {
	var events []domain.DomainEvent

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		t, err := h.taskRepo.FindByID(txCtx, cmd.UserID, cmd.TaskID)
		if err != nil {
			return err
		}
		if err := t.Complete(h.clock.Now()); err != nil {
			return err
		}
		if err := h.taskRepo.Save(txCtx, t); err != nil {
			return err
		}
		events = t.DomainEvents()
		return h.recorder.Record(txCtx, cmd.UserID, events...)
	})
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}

	_ = h.scores.Invalidate(ctx, cmd.UserID)
	h.recorder.Announce(ctx, events...)
	return nil
}
