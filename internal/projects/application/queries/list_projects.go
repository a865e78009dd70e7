// Package queries holds the project read handlers.
package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/focusos/internal/projects/domain"
	"github.com/google/uuid"
)

// ProjectDTO is a data transfer object for projects.
type ProjectDTO struct {
	ID          uuid.UUID  `json:"id"`
	AreaID      uuid.UUID  `json:"area_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	DeadlineAt  *time.Time `json:"deadline_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ListProjectsQuery contains the parameters for listing projects.
type ListProjectsQuery struct {
	UserID uuid.UUID
	AreaID *uuid.UUID
	Status string // defaults to ACTIVE
}

// ListProjectsHandler handles the ListProjectsQuery.
type ListProjectsHandler struct {
	projectRepo domain.Repository
}

// NewListProjectsHandler creates a new ListProjectsHandler.
func NewListProjectsHandler(projectRepo domain.Repository) *ListProjectsHandler {
	return &ListProjectsHandler{projectRepo: projectRepo}
}

// Handle executes the ListProjectsQuery.
func (h *ListProjectsHandler) Handle(ctx context.Context, query ListProjectsQuery) ([]ProjectDTO, error) {
	status, err := domain.ParseStatus(query.Status)
	if err != nil {
		return nil, err
	}
	projects, err := h.projectRepo.List(ctx, query.UserID, domain.ListFilter{AreaID: query.AreaID, Status: status})
	if err != nil {
		return nil, err
	}

	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ProjectDTO{
			ID:          p.ID(),
			AreaID:      p.AreaID(),
			Name:        p.Name(),
			Description: p.Description(),
			Status:      string(p.Status()),
			DeadlineAt:  p.DeadlineAt(),
			CreatedAt:   p.CreatedAt(),
		}
	}
	return dtos, nil
}
