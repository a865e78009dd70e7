package queries

import (
	"context"

	"github.com/felixgeelhaar/focusos/internal/productivity/domain/task"
	"github.com/google/uuid"
)

// ListTasksQuery contains the parameters for listing tasks. An empty Status
// lists everything except DONE.
type ListTasksQuery struct {
	UserID    uuid.UUID
	Status    string
	AreaID    *uuid.UUID
	ProjectID *uuid.UUID
	Limit     int
}

// ListTasksHandler handles the ListTasksQuery.
type ListTasksHandler struct {
	taskRepo task.Repository
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(taskRepo task.Repository) *ListTasksHandler {
	return &ListTasksHandler{taskRepo: taskRepo}
}

// Handle returns tasks newest first.
func (h *ListTasksHandler) Handle(ctx context.Context, query ListTasksQuery) ([]TaskDTO, error) {
	filter := task.ListFilter{
		AreaID:    query.AreaID,
		ProjectID: query.ProjectID,
		Limit:     query.Limit,
	}
	if query.Status != "" {
		status, err := task.ParseStatus(query.Status)
		if err != nil {
			return nil, err
		}
		filter.Statuses = []task.Status{status}
	}

	tasks, err := h.taskRepo.List(ctx, query.UserID, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		dtos = append(dtos, ToTaskDTO(t))
	}
	return dtos, nil
}
