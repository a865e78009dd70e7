package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/focusos/internal/scoring/domain"
	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
)

// EngineConfig tunes how signals combine into a score.
type EngineConfig struct {
	ImpactWeight    float64
	UrgencyWeight   float64
	StrategicWeight float64
	RiskWeight      float64
	BlockerWeight   float64

	DeadlineWeight  float64
	EffortFitWeight float64
	MomentumWeight  float64
	StalenessWeight float64

	// DeadlineDecayDays is the e-folding time of deadline pressure.
	DeadlineDecayDays   float64
	// EffortScaleMinutes is the effort at which effort fit drops to one half.
	EffortScaleMinutes  float64
	DefaultEffort       int
	MomentumWindowDays  float64
	StalenessWindowDays float64

	QuickEffortMinutes int
	DeepQuickPenalty   float64
	DeepPenalty        float64
	QuickPenalty       float64
	SwitchPenalty      float64

	BlockedCap float64
}

// DefaultEngineConfig returns the production weights.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		ImpactWeight:    0.30,
		UrgencyWeight:   0.25,
		StrategicWeight: 0.20,
		RiskWeight:      0.15,
		BlockerWeight:   0.10,

		DeadlineWeight:  0.35,
		EffortFitWeight: 0.20,
		MomentumWeight:  0.10,
		StalenessWeight: 0.15,

		DeadlineDecayDays:   4,
		EffortScaleMinutes:  90,
		DefaultEffort:       60,
		MomentumWindowDays:  7,
		StalenessWindowDays: 30,

		QuickEffortMinutes: 10,
		DeepQuickPenalty:   0.10,
		DeepPenalty:        0.25,
		QuickPenalty:       0.05,
		SwitchPenalty:      0.15,

		BlockedCap: 0.4,
	}
}

// Engine turns task signals into a 0..100 priority score.
type Engine struct {
	config EngineConfig
}

// NewEngine creates a new engine with the given configuration.
func NewEngine(cfg EngineConfig) *Engine {
	return &Engine{config: cfg}
}

// Score computes a score, its breakdown, and a human-readable explanation.
// It never fails.
func (e *Engine) Score(in domain.Input, ctx domain.Context) domain.Result {
	switch in.Status {
	case "WAITING", "SOMEDAY", "DONE":
		return zeroResult("0: Status is WAITING/SOMEDAY/DONE")
	}
	if in.SnoozedUntil != nil && in.SnoozedUntil.After(ctx.Now) {
		return zeroResult("0: Task is snoozed")
	}

	cfg := e.config
	base := cfg.ImpactWeight*rating(in.Impact) +
		cfg.UrgencyWeight*rating(in.Urgency) +
		cfg.StrategicWeight*rating(in.StrategicValue) +
		cfg.RiskWeight*rating(in.RiskOfDelay)
	if in.IsBlocker {
		base += cfg.BlockerWeight
	}

	dp := e.deadlinePressure(in, ctx)
	ef := e.effortFit(in)

	touched := in.CreatedAt
	if in.LastTouchedAt != nil {
		touched = *in.LastTouchedAt
	}
	momentum := clamp01(1 - sharedDomain.DaysSince(ctx.Now, touched)/cfg.MomentumWindowDays)
	staleness := clamp01(sharedDomain.DaysSince(ctx.Now, in.CreatedAt)/cfg.StalenessWindowDays) * cfg.StalenessWeight
	penalty := e.switchPenalty(in, ctx)

	score01 := base +
		cfg.DeadlineWeight*dp +
		cfg.EffortFitWeight*ef +
		cfg.MomentumWeight*momentum +
		staleness -
		penalty

	capped := in.HasUnresolvedDeps
	if capped {
		score01 *= cfg.BlockedCap
	}
	score := int(math.Round(100 * clamp01(score01)))

	parts := make([]string, 0, 7)
	if dp > 0 {
		parts = append(parts, "deadline ("+signed(cfg.DeadlineWeight*dp)+")")
	}
	parts = append(parts,
		"impact/urgency ("+signed(base)+")",
		"effort-fit ("+signed(cfg.EffortFitWeight*ef)+")",
	)
	if momentum > 0 {
		parts = append(parts, "momentum ("+signed(cfg.MomentumWeight*momentum)+")")
	}
	if staleness > 0 {
		parts = append(parts, "staleness ("+signed(staleness)+")")
	}
	parts = append(parts, "switch ("+signed(-penalty)+")")
	if capped {
		parts = append(parts, fmt.Sprintf("blocked-cap (×%s)", strconv.FormatFloat(cfg.BlockedCap, 'f', -1, 64)))
	}

	return domain.Result{
		PriorityScore: score,
		Components: domain.Components{
			Version:           domain.ComponentsVersion,
			Base:              base,
			DeadlinePressure:  dp,
			EffortFit:         ef,
			Momentum:          momentum,
			Staleness:         staleness,
			SwitchPenalty:     penalty,
			BlockedCapApplied: capped,
		},
		Explanation: strconv.Itoa(score) + ": " + strings.Join(parts, ", "),
	}
}

func (e *Engine) deadlinePressure(in domain.Input, ctx domain.Context) float64 {
	if in.DeadlineAt == nil {
		return 0
	}
	days := sharedDomain.DaysUntil(ctx.Now, *in.DeadlineAt)
	if days <= 0 {
		return 1
	}
	return clamp01(math.Exp(-days / e.config.DeadlineDecayDays))
}

func (e *Engine) effortFit(in domain.Input) float64 {
	minutes := e.config.DefaultEffort
	if in.EffortMinutes != nil {
		minutes = *in.EffortMinutes
	}
	return 1 / (1 + float64(minutes)/e.config.EffortScaleMinutes)
}

func (e *Engine) switchPenalty(in domain.Input, ctx domain.Context) float64 {
	if ctx.CurrentAreaID == nil || *ctx.CurrentAreaID == in.AreaID {
		return 0
	}
	quick := in.EffortMinutes != nil && *in.EffortMinutes <= e.config.QuickEffortMinutes
	switch {
	case ctx.DeepWork && quick:
		return e.config.DeepQuickPenalty
	case ctx.DeepWork:
		return e.config.DeepPenalty
	case quick:
		return e.config.QuickPenalty
	default:
		return e.config.SwitchPenalty
	}
}

func zeroResult(explanation string) domain.Result {
	return domain.Result{
		Components:  domain.Components{Version: domain.ComponentsVersion},
		Explanation: explanation,
	}
}

func rating(v int) float64 {
	return float64(v) / 5
}

// signed formats v with two decimals and an explicit sign.
func signed(v float64) string {
	if v == 0 {
		v = 0 // drop negative zero
	}
	if v >= 0 {
		return fmt.Sprintf("+%.2f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
