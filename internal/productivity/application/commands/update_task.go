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

// UpdateTaskCommand is a partial update; nil fields are left alone.
type UpdateTaskCommand struct {
	TaskID         uuid.UUID
	UserID         uuid.UUID
	Title          *string
	Description    *string
	Status         *string
	AreaID         *uuid.UUID
	ProjectID      *uuid.UUID
	ClearProject   bool
	EffortMinutes  *int
	Energy         *string
	DeadlineAt     *time.Time
	ClearDeadline  bool
	Impact         *int
	Urgency        *int
	StrategicValue *int
	RiskOfDelay    *int
	IsBlocker      *bool
}

// UpdateTaskHandler handles the UpdateTaskCommand.
type UpdateTaskHandler struct {
	taskRepo task.Repository
	recorder activity.Recorder
	scores   ScoreInvalidator
	uow      sharedApplication.UnitOfWork
	clock    domain.Clock
}

// NewUpdateTaskHandler creates a new UpdateTaskHandler.
func NewUpdateTaskHandler(taskRepo task.Repository, recorder activity.Recorder, scores ScoreInvalidator, uow sharedApplication.UnitOfWork, clock domain.Clock) *UpdateTaskHandler {
	return &UpdateTaskHandler{taskRepo: taskRepo, recorder: recorder, scores: scores, uow: uow, clock: clock}
}

// Handle applies the update and touches lastTouchedAt.
func (h *UpdateTaskHandler) Handle(ctx context.Context, cmd UpdateTaskCommand) error {
	var events []domain.DomainEvent

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		t, err := h.taskRepo.FindByID(txCtx, cmd.UserID, cmd.TaskID)
		if err != nil {
			return err
		}

		fields, err := applyUpdate(t, cmd)
		if err != nil {
			return err
		}
		t.MarkUpdated(fields, h.clock.Now())

		if err := h.taskRepo.Save(txCtx, t); err != nil {
			return err
		}
		events = t.DomainEvents()
		return h.recorder.Record(txCtx, cmd.UserID, events...)
	})
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	_ = h.scores.Invalidate(ctx, cmd.UserID)
	h.recorder.Announce(ctx, events...)
	return nil
}

func applyUpdate(t *task.Task, cmd UpdateTaskCommand) ([]string, error) {
	var fields []string

	if cmd.Title != nil {
		if err := t.SetTitle(*cmd.Title); err != nil {
			return nil, err
		}
		fields = append(fields, "title")
	}
	if cmd.Description != nil {
		t.SetDescription(*cmd.Description)
		fields = append(fields, "description")
	}
	if cmd.Status != nil {
		status, err := task.ParseStatus(*cmd.Status)
		if err != nil {
			return nil, err
		}
		if err := t.SetStatus(status); err != nil {
			return nil, err
		}
		fields = append(fields, "status")
	}
	if cmd.AreaID != nil {
		if err := t.SetArea(*cmd.AreaID); err != nil {
			return nil, err
		}
		fields = append(fields, "area_id")
	}
	if cmd.ProjectID != nil || cmd.ClearProject {
		t.SetProject(cmd.ProjectID)
		fields = append(fields, "project_id")
	}
	if cmd.EffortMinutes != nil {
		if err := t.SetEffort(cmd.EffortMinutes); err != nil {
			return nil, err
		}
		fields = append(fields, "effort_minutes")
	}
	if cmd.Energy != nil {
		energy, err := task.ParseEnergy(*cmd.Energy)
		if err != nil {
			return nil, err
		}
		if err := t.SetEnergy(energy); err != nil {
			return nil, err
		}
		fields = append(fields, "energy_required")
	}
	if cmd.DeadlineAt != nil || cmd.ClearDeadline {
		t.SetDeadline(cmd.DeadlineAt)
		fields = append(fields, "deadline_at")
	}

	r := t.Ratings()
	for _, rating := range []struct {
		name string
		dst  *int
		v    *int
	}{
		{"impact", &r.Impact, cmd.Impact},
		{"urgency", &r.Urgency, cmd.Urgency},
		{"strategic_value", &r.StrategicValue, cmd.StrategicValue},
		{"risk_of_delay", &r.RiskOfDelay, cmd.RiskOfDelay},
	} {
		if rating.v != nil {
			*rating.dst = *rating.v
			fields = append(fields, rating.name)
		}
	}
	t.SetRatings(r)

	if cmd.IsBlocker != nil {
		t.SetBlocker(*cmd.IsBlocker)
		fields = append(fields, "is_blocker")
	}
	return fields, nil
}
