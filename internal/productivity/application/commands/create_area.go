package commands

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/focusos/internal/productivity/domain/area"
	sharedApplication "github.com/felixgeelhaar/focusos/internal/shared/application"
	"github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
)

// CreateAreaCommand contains the data needed to create an area.
type CreateAreaCommand struct {
	UserID    uuid.UUID
	Name      string
	Color     string
	SortOrder int
}

// CreateAreaHandler handles the CreateAreaCommand.
type CreateAreaHandler struct {
	areaRepo area.Repository
	uow      sharedApplication.UnitOfWork
	clock    domain.Clock
}

// NewCreateAreaHandler creates a new CreateAreaHandler.
func NewCreateAreaHandler(areaRepo area.Repository, uow sharedApplication.UnitOfWork, clock domain.Clock) *CreateAreaHandler {
	return &CreateAreaHandler{areaRepo: areaRepo, uow: uow, clock: clock}
}

// Handle executes the CreateAreaCommand.
func (h *CreateAreaHandler) Handle(ctx context.Context, cmd CreateAreaCommand) (uuid.UUID, error) {
	a, err := area.NewArea(cmd.UserID, cmd.Name, cmd.Color, cmd.SortOrder, h.clock.Now())
	if err != nil {
		return uuid.Nil, err
	}
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		return h.areaRepo.Save(txCtx, a)
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create area: %w", err)
	}
	return a.ID(), nil
}
