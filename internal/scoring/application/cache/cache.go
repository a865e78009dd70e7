// Package cache holds recently scored shortlists so plan generation can skip
// a recompute when the scores are still fresh.
package cache

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/felixgeelhaar/focusos/internal/scoring/domain"
	"github.com/google/uuid"
)

// DefaultTTL is how long a scored task stays reusable.
const DefaultTTL = 10 * time.Minute

// Snapshot is a ranked batch of scored tasks.
type Snapshot struct {
	Tasks []domain.ScoredTask
	// ScoredAt is the newest scoring time among Tasks.
	ScoredAt time.Time
}

// Cache stores the latest scores per user.
type Cache interface {
	// Get returns the fresh entries for a user, or nil when none remain.
	Get(ctx context.Context, userID uuid.UUID) (*Snapshot, error)
	// Put merges a snapshot into the user's entries; the newer score of a task wins.
	Put(ctx context.Context, userID uuid.UUID, snapshot Snapshot) error
	// Invalidate drops everything cached for a user.
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

type entry struct {
	Task     domain.ScoredTask `json:"task"`
	ScoredAt time.Time         `json:"scored_at"`
}

// merge applies a snapshot on top of existing entries.
func merge(existing map[uuid.UUID]entry, snapshot Snapshot) map[uuid.UUID]entry {
	if existing == nil {
		existing = make(map[uuid.UUID]entry, len(snapshot.Tasks))
	}
	for _, task := range snapshot.Tasks {
		if current, ok := existing[task.ID]; ok && current.ScoredAt.After(snapshot.ScoredAt) {
			continue
		}
		existing[task.ID] = entry{Task: task, ScoredAt: snapshot.ScoredAt}
	}
	return existing
}

// fresh builds a ranked snapshot from entries scored at or after cutoff.
func fresh(entries []entry, cutoff time.Time) *Snapshot {
	var snapshot Snapshot
	for _, e := range entries {
		if e.ScoredAt.Before(cutoff) {
			continue
		}
		snapshot.Tasks = append(snapshot.Tasks, e.Task)
		if e.ScoredAt.After(snapshot.ScoredAt) {
			snapshot.ScoredAt = e.ScoredAt
		}
	}
	if len(snapshot.Tasks) == 0 {
		return nil
	}
	slices.SortFunc(snapshot.Tasks, func(a, b domain.ScoredTask) int {
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	domain.SortByScore(snapshot.Tasks)
	return &snapshot
}
