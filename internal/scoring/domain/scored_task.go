package domain

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"
)

// ScoredTask is a ranked entry in a shortlist.
type ScoredTask struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	AreaID        uuid.UUID  `json:"area_id"`
	AreaName      string     `json:"area_name"`
	AreaColor     string     `json:"area_color,omitempty"`
	PriorityScore int        `json:"priority_score"`
	Explanation   string     `json:"explanation"`
	EffortMinutes *int       `json:"effort_minutes,omitempty"`
	Energy        string     `json:"energy_required"`
	Status        string     `json:"status"`
	DeadlineAt    *time.Time `json:"deadline_at,omitempty"`
}

const (
	NowSize  = 3
	NextSize = 10
)

// SortByScore orders tasks by descending score. Ties keep input order.
func SortByScore(tasks []ScoredTask) {
	slices.SortStableFunc(tasks, func(a, b ScoredTask) int {
		return cmp.Compare(b.PriorityScore, a.PriorityScore)
	})
}

// Shortlist is the "now" and "next" view of a ranked batch.
type Shortlist struct {
	Now  []ScoredTask `json:"now"`
	Next []ScoredTask `json:"next"`
}

// NewShortlist takes the heads of an already ranked slice.
func NewShortlist(ranked []ScoredTask) Shortlist {
	return Shortlist{
		Now:  head(ranked, NowSize),
		Next: head(ranked, NextSize),
	}
}

func head(tasks []ScoredTask, n int) []ScoredTask {
	out := make([]ScoredTask, min(n, len(tasks)))
	copy(out, tasks)
	return out
}
