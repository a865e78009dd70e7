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

// SplitTaskCommand breaks a task into subtasks.
type SplitTaskCommand struct {
	TaskID   uuid.UUID
	UserID   uuid.UUID
	Subtasks []task.Subtask
}

// SplitTaskResult lists the created subtasks.
type SplitTaskResult struct {
	SubtaskIDs []uuid.UUID
}

// SplitTaskHandler handles the SplitTaskCommand.
type SplitTaskHandler struct {
	taskRepo task.Repository
	recorder activity.Recorder
	scores   ScoreInvalidator
	uow      sharedApplication.UnitOfWork
	clock    domain.Clock
}

// NewSplitTaskHandler creates a new SplitTaskHandler.
func NewSplitTaskHandler(taskRepo task.Repository, recorder activity.Recorder, scores ScoreInvalidator, uow sharedApplication.UnitOfWork, clock domain.Clock) *SplitTaskHandler {
	return &SplitTaskHandler{taskRepo: taskRepo, recorder: recorder, scores: scores, uow: uow, clock: clock}
}

// Handle executes the SplitTaskCommand.
func (h *SplitTaskHandler) Handle(ctx context.Context, cmd SplitTaskCommand) (*SplitTaskResult, error) {
	if len(cmd.Subtasks) == 0 {
		return nil, task.ErrSubtasksRequired
	}
	var (
		result SplitTaskResult
		events []domain.DomainEvent
	)

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		parent, err := h.taskRepo.FindByID(txCtx, cmd.UserID, cmd.TaskID)
		if err != nil {
			return err
		}
		children, err := parent.Split(cmd.Subtasks, h.clock.Now())
		if err != nil {
			return err
		}

		for _, child := range children {
			if err := h.taskRepo.Save(txCtx, child); err != nil {
				return err
			}
			result.SubtaskIDs = append(result.SubtaskIDs, child.ID())
			events = append(events, child.DomainEvents()...)
		}
		events = append(events, parent.DomainEvents()...)
		return h.recorder.Record(txCtx, cmd.UserID, events...)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to split task: %w", err)
	}

	_ = h.scores.Invalidate(ctx, cmd.UserID)
	h.recorder.Announce(ctx, events...)
	return &result, nil
}
