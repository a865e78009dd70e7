package queries

import (
	"context"

	"github.com/felixgeelhaar/focusos/internal/productivity/domain/area"
	"github.com/google/uuid"
)

// ListAreasHandler lists a user's active areas.
type ListAreasHandler struct {
	areaRepo area.Repository
}

func NewListAreasHandler(areaRepo area.Repository) *ListAreasHandler {
	return &ListAreasHandler{areaRepo: areaRepo}
}

func (h *ListAreasHandler) Handle(ctx context.Context, userID uuid.UUID) ([]AreaDTO, error) {
	areas, err := h.areaRepo.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	dtos := make([]AreaDTO, 0, len(areas))
	for _, a := range areas {
		dtos = append(dtos, AreaDTO{ID: a.ID(), Name: a.Name(), Color: a.Color(), SortOrder: a.SortOrder()})
	}
	return dtos, nil
}
