// Package queries holds the scoring read handlers.
package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/focusos/internal/productivity/domain/task"
	"github.com/felixgeelhaar/focusos/internal/scoring/domain"
	"github.com/google/uuid"
)

// DefaultHistoryLimit bounds ListRunsQuery when no limit is given.
const DefaultHistoryLimit = 20

// ListRunsQuery asks why a task ranks where it does.
type ListRunsQuery struct {
	UserID uuid.UUID
	TaskID uuid.UUID
	Limit  int
}

// RunDTO is a scoring run for display.
type RunDTO struct {
	ID            uuid.UUID         `json:"id"`
	TaskID        uuid.UUID         `json:"task_id"`
	PriorityScore int               `json:"priority_score"`
	Explanation   string            `json:"explanation"`
	Components    domain.Components `json:"components"`
	DeepWork      bool              `json:"deep_work"`
	CurrentAreaID *uuid.UUID        `json:"current_area_id,omitempty"`
	ScoredAt      time.Time         `json:"scored_at"`
}

// ListRunsHandler handles the ListRunsQuery.
type ListRunsHandler struct {
	taskRepo task.Repository
	runRepo  domain.RunRepository
}

// NewListRunsHandler creates a new ListRunsHandler.
func NewListRunsHandler(taskRepo task.Repository, runRepo domain.RunRepository) *ListRunsHandler {
	return &ListRunsHandler{taskRepo: taskRepo, runRepo: runRepo}
}

// Handle returns the most recent runs first. Unknown tasks yield task.ErrTaskNotFound.
func (h *ListRunsHandler) Handle(ctx context.Context, query ListRunsQuery) ([]RunDTO, error) {
	if _, err := h.taskRepo.FindByID(ctx, query.UserID, query.TaskID); err != nil {
		return nil, err
	}
	limit := query.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	runs, err := h.runRepo.ListByTask(ctx, query.UserID, query.TaskID, limit)
	if err != nil {
		return nil, err
	}
	dtos := make([]RunDTO, 0, len(runs))
	for _, run := range runs {
		dtos = append(dtos, RunDTO{
			ID:            run.ID,
			TaskID:        run.TaskID,
			PriorityScore: run.PriorityScore,
			Explanation:   run.Explanation,
			Components:    run.Components,
			DeepWork:      run.Context.DeepWork,
			CurrentAreaID: run.Context.CurrentAreaID,
			ScoredAt:      run.ScoredAt,
		})
	}
	return dtos, nil
}
