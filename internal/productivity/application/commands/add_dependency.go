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

// AddDependencyCommand makes TaskID wait on DependsOnTaskID.
type AddDependencyCommand struct {
	TaskID          uuid.UUID
	DependsOnTaskID uuid.UUID
	UserID          uuid.UUID
}

// AddDependencyHandler handles the AddDependencyCommand.
type AddDependencyHandler struct {
	taskRepo task.Repository
	recorder activity.Recorder
	scores   ScoreInvalidator
	uow      sharedApplication.UnitOfWork
	clock    domain.Clock
}

// NewAddDependencyHandler creates a new AddDependencyHandler.
func NewAddDependencyHandler(taskRepo task.Repository, recorder activity.Recorder, scores ScoreInvalidator, uow sharedApplication.UnitOfWork, clock domain.Clock) *AddDependencyHandler {
	return &AddDependencyHandler{taskRepo: taskRepo, recorder: recorder, scores: scores, uow: uow, clock: clock}
}

// Handle executes the AddDependencyCommand. Both tasks must belong to the user.
func (h *AddDependencyHandler) Handle(ctx context.Context, cmd AddDependencyCommand) error {
	var events []domain.DomainEvent
	now := h.clock.Now()

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if cmd.TaskID == cmd.DependsOnTaskID {
			return task.ErrSelfDependency
		}
		t, err := h.taskRepo.FindByID(txCtx, cmd.UserID, cmd.TaskID)
		if err != nil {
			return err
		}
		prerequisite, err := h.taskRepo.FindByID(txCtx, cmd.UserID, cmd.DependsOnTaskID)
		if err != nil {
			return err
		}
		if err := t.DependOn(prerequisite, now); err != nil {
			return err
		}
		if err := h.taskRepo.AddDependency(txCtx, t.ID(), prerequisite.ID(), now); err != nil {
			return err
		}
		events = t.DomainEvents()
		return h.recorder.Record(txCtx, cmd.UserID, events...)
	})
	if err != nil {
		return fmt.Errorf("failed to add dependency: %w", err)
	}

	_ = h.scores.Invalidate(ctx, cmd.UserID)
	h.recorder.Announce(ctx, events...)
	return nil
}
