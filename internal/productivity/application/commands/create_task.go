package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/focusos/internal/activity"
	"github.com/felixgeelhaar/focusos/internal/productivity/domain/area"
	"github.com/felixgeelhaar/focusos/internal/productivity/domain/task"
	sharedApplication "github.com/felixgeelhaar/focusos/internal/shared/application"
	"github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
)

// CreateTaskCommand contains the data needed to create a task. Nil ratings
// take the task defaults.
type CreateTaskCommand struct {
	UserID         uuid.UUID
	AreaID         uuid.UUID
	ProjectID      *uuid.UUID
	ParentTaskID   *uuid.UUID
	Title          string
	Description    string
	Status         string
	EffortMinutes  *int
	Energy         string
	DeadlineAt     *time.Time
	Impact         *int
	Urgency        *int
	StrategicValue *int
	RiskOfDelay    *int
	IsBlocker      bool
}

// CreateTaskResult contains the result of creating a task.
type CreateTaskResult struct {
	TaskID uuid.UUID
}

// CreateTaskHandler handles the CreateTaskCommand.
type CreateTaskHandler struct {
	taskRepo task.Repository
	areaRepo area.Repository
	recorder activity.Recorder
	scores   ScoreInvalidator
	uow      sharedApplication.UnitOfWork
	clock    domain.Clock
}

// NewCreateTaskHandler creates a new CreateTaskHandler.
func NewCreateTaskHandler(
	taskRepo task.Repository,
	areaRepo area.Repository,
	recorder activity.Recorder,
	scores ScoreInvalidator,
	uow sharedApplication.UnitOfWork,
	clock domain.Clock,
) *CreateTaskHandler {
	return &CreateTaskHandler{
		taskRepo: taskRepo,
		areaRepo: areaRepo,
		recorder: recorder,
		scores:   scores,
		uow:      uow,
		clock:    clock,
	}
}

// Handle executes the CreateTaskCommand.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (*CreateTaskResult, error) {
	var (
		result *CreateTaskResult
		events []domain.DomainEvent
	)
	now := h.clock.Now()

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if cmd.AreaID == uuid.Nil {
			return task.ErrAreaRequired
		}
		if _, err := h.areaRepo.FindByID(txCtx, cmd.UserID, cmd.AreaID); err != nil {
			return err
		}

		t, err := task.NewTask(cmd.UserID, cmd.AreaID, cmd.Title, now)
		if err != nil {
			return err
		}
		if err := applyCreateFields(t, cmd); err != nil {
			return err
		}

		if err := h.taskRepo.Save(txCtx, t); err != nil {
			return err
		}

		events = t.DomainEvents()
		if err := h.recorder.Record(txCtx, cmd.UserID, events...); err != nil {
			return err
		}
		result = &CreateTaskResult{TaskID: t.ID()}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	_ = h.scores.Invalidate(ctx, cmd.UserID)
	h.recorder.Announce(ctx, events...)
	return result, nil
}

func applyCreateFields(t *task.Task, cmd CreateTaskCommand) error {
	t.SetDescription(cmd.Description)
	t.SetProject(cmd.ProjectID)
	t.SetParent(cmd.ParentTaskID)
	t.SetDeadline(cmd.DeadlineAt)
	t.SetBlocker(cmd.IsBlocker)

	if cmd.Status != "" {
		status, err := task.ParseStatus(cmd.Status)
		if err != nil {
			return err
		}
		if err := t.SetStatus(status); err != nil {
			return err
		}
	}
	if cmd.Energy != "" {
		energy, err := task.ParseEnergy(cmd.Energy)
		if err != nil {
			return err
		}
		if err := t.SetEnergy(energy); err != nil {
			return err
		}
	}
	if err := t.SetEffort(cmd.EffortMinutes); err != nil {
		return err
	}

	r := t.Ratings()
	setIfPresent(&r.Impact, cmd.Impact)
	setIfPresent(&r.Urgency, cmd.Urgency)
	setIfPresent(&r.StrategicValue, cmd.StrategicValue)
	setIfPresent(&r.RiskOfDelay, cmd.RiskOfDelay)
	t.SetRatings(r)
	return nil
}

func setIfPresent(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
