package task

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows List. Empty Statuses means every status except DONE.
type ListFilter struct {
	Statuses  []Status
	AreaID    *uuid.UUID
	ProjectID *uuid.UUID
	Limit     int
}

// Repository persists tasks and their dependencies.
type Repository interface {
	Save(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Task, error)
	// List returns tasks newest first.
	List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Task, error)
	// FindActionable returns NEXT and IN_PROGRESS tasks oldest first.
	FindActionable(ctx context.Context, userID uuid.UUID, areaID, projectID *uuid.UUID) ([]*Task, error)
	AddDependency(ctx context.Context, taskID, dependsOnID uuid.UUID, at time.Time) error
	// UnresolvedDependencies returns the IDs of tasks with a prerequisite
	// that is not DONE.
	UnresolvedDependencies(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error)
	// LastChangedAt is the latest write to any of the user's tasks or
	// dependencies, or the zero time when there is none.
	LastChangedAt(ctx context.Context, userID uuid.UUID) (time.Time, error)
}
