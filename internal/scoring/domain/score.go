// Package domain defines what scoring consumes and produces.
package domain

import (
	"encoding/json"
	"fmt"
	"time"

	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
)

// Input is the task shape the engine scores.
type Input struct {
	TaskID            uuid.UUID
	AreaID            uuid.UUID
	Status            string
	DeadlineAt        *time.Time
	SnoozedUntil      *time.Time
	EffortMinutes     *int
	Impact            int
	Urgency           int
	StrategicValue    int
	RiskOfDelay       int
	IsBlocker         bool
	LastTouchedAt     *time.Time
	CreatedAt         time.Time
	HasUnresolvedDeps bool
}

// Context is the per-batch scoring context.
type Context struct {
	Now           time.Time
	CurrentAreaID *uuid.UUID
	DeepWork      bool
}

// ComponentsVersion is the current Components schema.
const ComponentsVersion = 1

// Components is the breakdown behind a score.
type Components struct {
	Version           int     `json:"version"`
	Base              float64 `json:"base"`
	DeadlinePressure  float64 `json:"deadline_pressure"`
	EffortFit         float64 `json:"effort_fit"`
	Momentum          float64 `json:"momentum"`
	Staleness         float64 `json:"staleness"`
	SwitchPenalty     float64 `json:"switch_penalty"`
	BlockedCapApplied bool    `json:"blocked_cap_applied"`
}

// Result is the engine output.
type Result struct {
	PriorityScore int
	Components    Components
	Explanation   string
}

// EncodeComponents serialises c for storage.
func EncodeComponents(c Components) (string, error) {
	if c.Version == 0 {
		c.Version = ComponentsVersion
	}
	b, err := json.Marshal(c)
	return string(b), err
}

// DecodeComponents parses a stored breakdown.
func DecodeComponents(raw string) (Components, error) {
	var c Components
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return Components{}, fmt.Errorf("failed to decode components: %w", err)
	}
	if c.Version != ComponentsVersion {
		return Components{}, fmt.Errorf("components v%d: %w", c.Version, sharedDomain.ErrUnsupportedVersion)
	}
	return c, nil
}

// RunContextVersion is the current RunContext schema.
const RunContextVersion = 1

// RunContext records the context a run was scored under.
type RunContext struct {
	Version       int        `json:"version"`
	CurrentAreaID *uuid.UUID `json:"current_area_id,omitempty"`
	DeepWork      bool       `json:"deep_work"`
}

func EncodeRunContext(c RunContext) (string, error) {
	if c.Version == 0 {
		c.Version = RunContextVersion
	}
	b, err := json.Marshal(c)
	return string(b), err
}

func DecodeRunContext(raw string) (RunContext, error) {
	var c RunContext
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return RunContext{}, fmt.Errorf("failed to decode run context: %w", err)
	}
	if c.Version != RunContextVersion {
		return RunContext{}, fmt.Errorf("run context v%d: %w", c.Version, sharedDomain.ErrUnsupportedVersion)
	}
	return c, nil
}
