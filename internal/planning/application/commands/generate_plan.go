// Package commands holds the planning write handlers.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/focusos/internal/activity"
	"github.com/felixgeelhaar/focusos/internal/identity/application/settings"
	"github.com/felixgeelhaar/focusos/internal/planning/domain"
	"github.com/felixgeelhaar/focusos/internal/scoring/application/cache"
	scoringCommands "github.com/felixgeelhaar/focusos/internal/scoring/application/commands"
	scoring "github.com/felixgeelhaar/focusos/internal/scoring/domain"
	sharedApplication "github.com/felixgeelhaar/focusos/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
)

// Recomputer scores a user's actionable tasks.
type Recomputer interface {
	Handle(ctx context.Context, cmd scoringCommands.RecomputeCommand) (*scoringCommands.RecomputeResult, error)
}

// RecentScores reads stored scoring runs.
type RecentScores interface {
	ListRecent(ctx context.Context, userID uuid.UUID, since time.Time) ([]scoring.RecentScore, error)
}

// TaskChanges reports when a user's tasks last changed.
type TaskChanges interface {
	LastChangedAt(ctx context.Context, userID uuid.UUID) (time.Time, error)
}

// PreferencesReader supplies the user's planning defaults.
type PreferencesReader interface {
	Get(ctx context.Context, userID uuid.UUID) (settings.Preferences, error)
}

// GeneratePlanCommand builds today's plan. Nil options fall back to the
// user's preferences.
type GeneratePlanCommand struct {
	UserID           uuid.UUID
	AvailableMinutes *int
	DeepWork         *bool
	AreaFocusID      *uuid.UUID
}

// GeneratePlanHandler handles the GeneratePlanCommand.
type GeneratePlanHandler struct {
	planRepo  domain.Repository
	recompute Recomputer
	scores    cache.Cache
	runs      RecentScores
	tasks     TaskChanges
	prefs     PreferencesReader
	recorder  activity.Recorder
	uow       sharedApplication.UnitOfWork
	times     *sharedDomain.TimeService
	reuseTTL  time.Duration
}

// NewGeneratePlanHandler creates a new GeneratePlanHandler. A zero reuseTTL
// selects cache.DefaultTTL.
func NewGeneratePlanHandler(
	planRepo domain.Repository,
	recompute Recomputer,
	scores cache.Cache,
	runs RecentScores,
	tasks TaskChanges,
	prefs PreferencesReader,
	recorder activity.Recorder,
	uow sharedApplication.UnitOfWork,
	timeService *sharedDomain.TimeService,
	reuseTTL time.Duration,
) *GeneratePlanHandler {
	if reuseTTL <= 0 {
		reuseTTL = cache.DefaultTTL
	}
	return &GeneratePlanHandler{
		planRepo:  planRepo,
		recompute: recompute,
		scores:    scores,
		runs:      runs,
		tasks:     tasks,
		prefs:     prefs,
		recorder:  recorder,
		uow:       uow,
		times:     timeService,
		reuseTTL:  reuseTTL,
	}
}

// Handle executes the GeneratePlanCommand.
func (h *GeneratePlanHandler) Handle(ctx context.Context, cmd GeneratePlanCommand) (*domain.DailyPlan, error) {
	prefs, err := h.prefs.Get(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	available := prefs.DefaultAvailableMinutes
	if cmd.AvailableMinutes != nil {
		available = *cmd.AvailableMinutes
	}
	if available <= 0 {
		available = domain.DefaultAvailableMinutes
	}
	deepWork := prefs.DeepWorkEnabled
	if cmd.DeepWork != nil {
		deepWork = *cmd.DeepWork
	}

	next, scoredAt, reused, err := h.shortlist(ctx, cmd, deepWork)
	if err != nil {
		return nil, err
	}

	now := h.times.Now()
	plan := domain.NewDailyPlan(cmd.UserID, h.times.DateOf(now), domain.Allocate(next, available), domain.Inputs{
		AvailableMinutes: available,
		DeepWork:         deepWork,
		AreaFocusID:      cmd.AreaFocusID,
		ReusedScores:     reused,
		ScoredAt:         scoredAt,
	}, now)

	var events []sharedDomain.DomainEvent
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.planRepo.Upsert(txCtx, plan); err != nil {
			return err
		}
		events = []sharedDomain.DomainEvent{domain.NewPlanGenerated(plan, now)}
		return h.recorder.Record(txCtx, cmd.UserID, events...)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}

	h.recorder.Announce(ctx, events...)
	return plan, nil
}

// shortlist returns the "next" tasks. Fresh cached scores win, then runs
// stored within the reuse window, then a full recompute. Scores older than
// the last task change are never reused. A failing cache counts as a miss.
func (h *GeneratePlanHandler) shortlist(ctx context.Context, cmd GeneratePlanCommand, deepWork bool) ([]scoring.ScoredTask, time.Time, bool, error) {
	changed, err := h.tasks.LastChangedAt(ctx, cmd.UserID)
	if err != nil {
		return nil, time.Time{}, false, err
	}

	if snapshot, err := h.scores.Get(ctx, cmd.UserID); err == nil && snapshot != nil && !changed.After(snapshot.ScoredAt) {
		return scoring.NewShortlist(snapshot.Tasks).Next, snapshot.ScoredAt, true, nil
	}

	recent, err := h.runs.ListRecent(ctx, cmd.UserID, h.times.Now().Add(-h.reuseTTL))
	if err != nil {
		return nil, time.Time{}, false, err
	}
	if scoredAt := scoring.LatestScoredAt(recent); len(recent) > 0 && !changed.After(scoredAt) {
		ranked := make([]scoring.ScoredTask, len(recent))
		for i, r := range recent {
			ranked[i] = r.ScoredTask
		}
		scoring.SortByScore(ranked)
		return scoring.NewShortlist(ranked).Next, scoredAt, true, nil
	}

	result, err := h.recompute.Handle(ctx, scoringCommands.RecomputeCommand{
		UserID:        cmd.UserID,
		CurrentAreaID: cmd.AreaFocusID,
		DeepWork:      deepWork,
	})
	if err != nil {
		return nil, time.Time{}, false, err
	}
	return result.Next, result.ScoredAt, false, nil
}
