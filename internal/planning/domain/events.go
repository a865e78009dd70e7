package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
)

const (
	AggregateType       = "DailyPlan"
	RoutingKeyGenerated = "plan.generated"
)

// PlanGenerated is emitted each time a day's plan is (re)written.
type PlanGenerated struct {
	sharedDomain.BaseEvent
	Date             string `json:"date"`
	AvailableMinutes int    `json:"available_minutes"`
	MustCount        int    `json:"must_count"`
	ShouldCount      int    `json:"should_count"`
	CouldCount       int    `json:"could_count"`
}

func NewPlanGenerated(p *DailyPlan, at time.Time) *PlanGenerated {
	return &PlanGenerated{
		BaseEvent:        sharedDomain.NewBaseEvent(p.ID, AggregateType, RoutingKeyGenerated, at),
		Date:             p.PlanDate,
		AvailableMinutes: p.Plan.AvailableMinutes,
		MustCount:        len(p.Plan.Bucket(BucketMust).Tasks),
		ShouldCount:      len(p.Plan.Bucket(BucketShould).Tasks),
		CouldCount:       len(p.Plan.Bucket(BucketCould).Tasks),
	}
}
