// Package domain models the daily plan and how a ranked shortlist is
// time-boxed into it.
package domain

import (
	scoring "github.com/felixgeelhaar/focusos/internal/scoring/domain"
	"github.com/google/uuid"
)

// BucketLabel names a plan tier.
type BucketLabel string

const (
	BucketMust   BucketLabel = "Must"
	BucketShould BucketLabel = "Should"
	BucketCould  BucketLabel = "Could"
)

// Allocation targets as fractions of the available minutes.
const (
	MustShare   = 0.6
	ShouldShare = 0.3

	// DefaultEffortMinutes is assumed for tasks without an estimate.
	DefaultEffortMinutes = 30
)

// PlanTask is a task summary inside a bucket.
type PlanTask struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	AreaID        uuid.UUID `json:"area_id"`
	AreaName      string    `json:"area_name,omitempty"`
	AreaColor     string    `json:"area_color,omitempty"`
	PriorityScore int       `json:"priority_score"`
	EffortMinutes int       `json:"effort_minutes"`
}

// Bucket is one tier of the plan.
type Bucket struct {
	Label        BucketLabel `json:"label"`
	Tasks        []PlanTask  `json:"tasks"`
	TotalMinutes int         `json:"total_minutes"`
}

// Allocate fills Must until its running total reaches 60% of available,
// then Should until 30%, and puts the rest in Could. The task that crosses
// a threshold stays in the bucket it crossed. Buckets are always returned
// in Must, Should, Could order.
func Allocate(ranked []scoring.ScoredTask, availableMinutes int) []Bucket {
	sorted := make([]scoring.ScoredTask, len(ranked))
	copy(sorted, ranked)
	scoring.SortByScore(sorted)

	must := Bucket{Label: BucketMust, Tasks: []PlanTask{}}
	should := Bucket{Label: BucketShould, Tasks: []PlanTask{}}
	could := Bucket{Label: BucketCould, Tasks: []PlanTask{}}

	mustTarget := MustShare * float64(availableMinutes)
	shouldTarget := ShouldShare * float64(availableMinutes)

	for _, t := range sorted {
		item := PlanTask{
			ID:            t.ID,
			Title:         t.Title,
			AreaID:        t.AreaID,
			AreaName:      t.AreaName,
			AreaColor:     t.AreaColor,
			PriorityScore: t.PriorityScore,
			EffortMinutes: DefaultEffortMinutes,
		}
		if t.EffortMinutes != nil {
			item.EffortMinutes = *t.EffortMinutes
		}

		switch {
		case float64(must.TotalMinutes) < mustTarget:
			must.add(item)
		case float64(should.TotalMinutes) < shouldTarget:
			should.add(item)
		default:
			could.add(item)
		}
	}
	return []Bucket{must, should, could}
}

func (b *Bucket) add(t PlanTask) {
	b.Tasks = append(b.Tasks, t)
	b.TotalMinutes += t.EffortMinutes
}
