package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/focusos/internal/activity"
	"github.com/felixgeelhaar/focusos/internal/inbox/domain"
	productivityCommands "github.com/felixgeelhaar/focusos/internal/productivity/application/commands"
	"github.com/felixgeelhaar/focusos/internal/productivity/domain/task"
	projectCommands "github.com/felixgeelhaar/focusos/internal/projects/application/commands"
	sharedApplication "github.com/felixgeelhaar/focusos/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
)

// ErrAreaRequired is returned when a task or project triage has no area.
var ErrAreaRequired = errors.New("triage target area is required")

type taskCreator interface {
	Handle(ctx context.Context, cmd productivityCommands.CreateTaskCommand) (*productivityCommands.CreateTaskResult, error)
}

type projectCreator interface {
	Handle(ctx context.Context, cmd projectCommands.CreateProjectCommand) (*projectCommands.CreateProjectResult, error)
}

// TriageCommand turns an inbox item into a task, project, note or someday
// task. An empty Title reuses the captured text.
type TriageCommand struct {
	UserID        uuid.UUID
	ItemID        uuid.UUID
	Type          string
	Title         string
	AreaID        *uuid.UUID
	ProjectID     *uuid.UUID
	EffortMinutes *int
	DeadlineAt    *time.Time
	Impact        *int
	Urgency       *int
}

// TriageResult links the item to what it became.
type TriageResult struct {
	ItemID    uuid.UUID         `json:"id"`
	Type      domain.TriageType `json:"type"`
	TaskID    *uuid.UUID        `json:"triaged_task_id,omitempty"`
	ProjectID *uuid.UUID        `json:"triaged_project_id,omitempty"`
}

// TriageHandler handles TriageCommand.
type TriageHandler struct {
	repo     domain.Repository
	tasks    taskCreator
	projects projectCreator
	recorder activity.Recorder
	uow      sharedApplication.UnitOfWork
	clock    sharedDomain.Clock
}

// NewTriageHandler creates a new TriageHandler.
func NewTriageHandler(
	repo domain.Repository,
	tasks taskCreator,
	projects projectCreator,
	recorder activity.Recorder,
	uow sharedApplication.UnitOfWork,
	clock sharedDomain.Clock,
) *TriageHandler {
	return &TriageHandler{
		repo:     repo,
		tasks:    tasks,
		projects: projects,
		recorder: recorder,
		uow:      uow,
		clock:    clock,
	}
}

// Handle triages the item. The created task or project joins the same
// transaction, so a failed triage leaves nothing behind.
func (h *TriageHandler) Handle(ctx context.Context, cmd TriageCommand) (*TriageResult, error) {
	as, err := domain.ParseTriageType(cmd.Type)
	if err != nil {
		return nil, err
	}
	if as != domain.TriageNote && (cmd.AreaID == nil || *cmd.AreaID == uuid.Nil) {
		return nil, ErrAreaRequired
	}

	var (
		result *TriageResult
		events []sharedDomain.DomainEvent
	)
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		item, err := h.repo.FindByID(txCtx, cmd.UserID, cmd.ItemID)
		if err != nil {
			return err
		}
		if item.Status() == domain.StatusTriaged {
			return domain.ErrAlreadyTriaged
		}

		title := strings.TrimSpace(cmd.Title)
		if title == "" {
			title = item.RawText()
		}

		var taskID, projectID *uuid.UUID
		switch as {
		case domain.TriageTask, domain.TriageSomeday:
			created, err := h.tasks.Handle(txCtx, productivityCommands.CreateTaskCommand{
				UserID:        cmd.UserID,
				AreaID:        *cmd.AreaID,
				ProjectID:     cmd.ProjectID,
				Title:         title,
				Status:        taskStatus(as),
				EffortMinutes: cmd.EffortMinutes,
				DeadlineAt:    cmd.DeadlineAt,
				Impact:        cmd.Impact,
				Urgency:       cmd.Urgency,
			})
			if err != nil {
				return err
			}
			taskID = &created.TaskID
		case domain.TriageProject:
			created, err := h.projects.Handle(txCtx, projectCommands.CreateProjectCommand{
				UserID:     cmd.UserID,
				AreaID:     *cmd.AreaID,
				Name:       title,
				DeadlineAt: cmd.DeadlineAt,
			})
			if err != nil {
				return err
			}
			projectID = &created.ProjectID
		}

		if err := item.Triage(as, taskID, projectID, h.clock.Now()); err != nil {
			return err
		}
		if err := h.repo.Save(txCtx, item); err != nil {
			return err
		}

		result = &TriageResult{ItemID: item.ID(), Type: as, TaskID: taskID, ProjectID: projectID}
		events = item.DomainEvents()
		return h.recorder.Record(txCtx, cmd.UserID, events...)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to triage inbox item: %w", err)
	}

	h.recorder.Announce(ctx, events...)
	return result, nil
}

func taskStatus(as domain.TriageType) string {
	if as == domain.TriageSomeday {
		return string(task.StatusSomeday)
	}
	return ""
}
