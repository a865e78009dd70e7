// Package commands holds the project write handlers.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/focusos/internal/activity"
	"github.com/felixgeelhaar/focusos/internal/productivity/domain/area"
	"github.com/felixgeelhaar/focusos/internal/projects/domain"
	sharedApplication "github.com/felixgeelhaar/focusos/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
)

// CreateProjectCommand contains the data needed to create a project.
type CreateProjectCommand struct {
	UserID      uuid.UUID
	AreaID      uuid.UUID
	Name        string
	Description string
	DeadlineAt  *time.Time
	Status      string
}

// CreateProjectResult contains the result of creating a project.
type CreateProjectResult struct {
	ProjectID uuid.UUID
}

// CreateProjectHandler handles the CreateProjectCommand.
type CreateProjectHandler struct {
	projectRepo domain.Repository
	areaRepo    area.Repository
	recorder    activity.Recorder
	uow         sharedApplication.UnitOfWork
	clock       sharedDomain.Clock
}

// NewCreateProjectHandler creates a new CreateProjectHandler.
func NewCreateProjectHandler(
	projectRepo domain.Repository,
	areaRepo area.Repository,
	recorder activity.Recorder,
	uow sharedApplication.UnitOfWork,
	clock sharedDomain.Clock,
) *CreateProjectHandler {
	return &CreateProjectHandler{
		projectRepo: projectRepo,
		areaRepo:    areaRepo,
		recorder:    recorder,
		uow:         uow,
		clock:       clock,
	}
}

// Handle executes the CreateProjectCommand.
func (h *CreateProjectHandler) Handle(ctx context.Context, cmd CreateProjectCommand) (*CreateProjectResult, error) {
	status, err := domain.ParseStatus(cmd.Status)
	if err != nil {
		return nil, err
	}

	var (
		result *CreateProjectResult
		events []sharedDomain.DomainEvent
	)
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		project, err := domain.NewProject(cmd.UserID, cmd.AreaID, cmd.Name, status, h.clock.Now())
		if err != nil {
			return err
		}
		if _, err := h.areaRepo.FindByID(txCtx, cmd.UserID, cmd.AreaID); err != nil {
			return err
		}
		project.SetDescription(cmd.Description)
		project.SetDeadline(cmd.DeadlineAt)

		if err := h.projectRepo.Save(txCtx, project); err != nil {
			return err
		}

		result = &CreateProjectResult{ProjectID: project.ID()}
		events = project.DomainEvents()
		return h.recorder.Record(txCtx, cmd.UserID, events...)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	h.recorder.Announce(ctx, events...)
	return result, nil
}
