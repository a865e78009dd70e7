package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
)

// DefaultAvailableMinutes is the budget when neither the request nor the
// user's preferences give one.
const DefaultAvailableMinutes = 240

var ErrPlanNotFound = errors.New("plan not found")

const (
	PlanVersion   = 1
	InputsVersion = 1
)

// Plan is the stored plan payload.
type Plan struct {
	Version          int      `json:"version"`
	Date             string   `json:"date"`
	AvailableMinutes int      `json:"available_minutes"`
	Buckets          []Bucket `json:"buckets"`
}

// Inputs records what a plan was generated from.
type Inputs struct {
	Version          int        `json:"version"`
	AvailableMinutes int        `json:"available_minutes"`
	DeepWork         bool       `json:"deep_work"`
	AreaFocusID      *uuid.UUID `json:"area_focus_id,omitempty"`
	ReusedScores     bool       `json:"reused_scores"`
	ScoredAt         time.Time  `json:"scored_at"`
}

// DailyPlan is the one plan a user has for a local date.
type DailyPlan struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	PlanDate    string    `json:"plan_date"`
	Plan        Plan      `json:"plan"`
	Inputs      Inputs    `json:"inputs"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewDailyPlan assembles a plan for date from allocated buckets.
func NewDailyPlan(userID uuid.UUID, date string, buckets []Bucket, inputs Inputs, generatedAt time.Time) *DailyPlan {
	inputs.Version = InputsVersion
	return &DailyPlan{
		ID:       uuid.New(),
		UserID:   userID,
		PlanDate: date,
		Plan: Plan{
			Version:          PlanVersion,
			Date:             date,
			AvailableMinutes: inputs.AvailableMinutes,
			Buckets:          buckets,
		},
		Inputs:      inputs,
		GeneratedAt: generatedAt.UTC(),
	}
}

// Bucket returns the bucket with label, or an empty one.
func (p Plan) Bucket(label BucketLabel) Bucket {
	for _, b := range p.Buckets {
		if b.Label == label {
			return b
		}
	}
	return Bucket{Label: label}
}

func EncodePlan(p Plan) (string, error) {
	if p.Version == 0 {
		p.Version = PlanVersion
	}
	b, err := json.Marshal(p)
	return string(b), err
}

func DecodePlan(raw string) (Plan, error) {
	var p Plan
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Plan{}, fmt.Errorf("failed to decode plan: %w", err)
	}
	if p.Version != PlanVersion {
		return Plan{}, fmt.Errorf("plan v%d: %w", p.Version, sharedDomain.ErrUnsupportedVersion)
	}
	return p, nil
}

func EncodeInputs(in Inputs) (string, error) {
	if in.Version == 0 {
		in.Version = InputsVersion
	}
	b, err := json.Marshal(in)
	return string(b), err
}

func DecodeInputs(raw string) (Inputs, error) {
	var in Inputs
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return Inputs{}, fmt.Errorf("failed to decode plan inputs: %w", err)
	}
	if in.Version != InputsVersion {
		return Inputs{}, fmt.Errorf("plan inputs v%d: %w", in.Version, sharedDomain.ErrUnsupportedVersion)
	}
	return in, nil
}

// Repository persists daily plans.
type Repository interface {
	// Upsert replaces any plan stored for the same user and date.
	Upsert(ctx context.Context, plan *DailyPlan) error
	// FindByDate returns ErrPlanNotFound when no plan exists.
	FindByDate(ctx context.Context, userID uuid.UUID, date string) (*DailyPlan, error)
}
