package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Run is one persisted scoring of one task.
type Run struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	TaskID        uuid.UUID
	PriorityScore int
	Components    Components
	Explanation   string
	Context       RunContext
	ScoredAt      time.Time
}

// NewRun stamps a result for persistence.
func NewRun(userID, taskID uuid.UUID, result Result, ctx Context) Run {
	components := result.Components
	components.Version = ComponentsVersion
	return Run{
		ID:            uuid.New(),
		UserID:        userID,
		TaskID:        taskID,
		PriorityScore: result.PriorityScore,
		Components:    components,
		Explanation:   result.Explanation,
		Context: RunContext{
			Version:       RunContextVersion,
			CurrentAreaID: ctx.CurrentAreaID,
			DeepWork:      ctx.DeepWork,
		},
		ScoredAt: ctx.Now.UTC(),
	}
}

// RunRepository persists scoring runs.
type RunRepository interface {
	Save(ctx context.Context, run Run) error
	// ListByTask returns the most recent runs first.
	ListByTask(ctx context.Context, userID, taskID uuid.UUID, limit int) ([]Run, error)
	// ListRecent returns the newest run of each actionable task scored at
	// or after since, highest score first.
	ListRecent(ctx context.Context, userID uuid.UUID, since time.Time) ([]RecentScore, error)
}

// RecentScore is a stored score joined with the task as it is now.
type RecentScore struct {
	ScoredTask
	ScoredAt time.Time
}

// LatestScoredAt is the newest ScoredAt in scores, or the zero time.
func LatestScoredAt(scores []RecentScore) time.Time {
	var latest time.Time
	for _, s := range scores {
		if s.ScoredAt.After(latest) {
			latest = s.ScoredAt
		}
	}
	return latest
}
