// Package commands holds the scoring write handlers.
package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/focusos/internal/productivity/domain/area"
	"github.com/felixgeelhaar/focusos/internal/productivity/domain/task"
	"github.com/felixgeelhaar/focusos/internal/scoring/application/cache"
	"github.com/felixgeelhaar/focusos/internal/scoring/application/services"
	"github.com/felixgeelhaar/focusos/internal/scoring/domain"
	sharedApplication "github.com/felixgeelhaar/focusos/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/felixgeelhaar/focusos/pkg/observability"
	"github.com/google/uuid"
)

// Metric names emitted by RecomputeHandler.
const (
	MetricRecomputeTasks    = "scoring.recompute.tasks"
	MetricRecomputeDuration = "scoring.recompute"
)

// RecomputeCommand scores a user's actionable tasks.
type RecomputeCommand struct {
	UserID        uuid.UUID
	AreaID        *uuid.UUID
	ProjectID     *uuid.UUID
	CurrentAreaID *uuid.UUID
	DeepWork      bool
}

// RecomputeResult is the ranked outcome of a recompute.
type RecomputeResult struct {
	domain.Shortlist
	ScoredAt time.Time `json:"scored_at"`
	Scored   int       `json:"scored"`
}

// RecomputeHandler handles the RecomputeCommand.
type RecomputeHandler struct {
	taskRepo task.Repository
	areaRepo area.Repository
	runRepo  domain.RunRepository
	engine   *services.Engine
	cache    cache.Cache
	uow      sharedApplication.UnitOfWork
	clock    sharedDomain.Clock
	metrics  observability.Metrics
}

// NewRecomputeHandler creates a new RecomputeHandler.
func NewRecomputeHandler(
	taskRepo task.Repository,
	areaRepo area.Repository,
	runRepo domain.RunRepository,
	engine *services.Engine,
	scoreCache cache.Cache,
	uow sharedApplication.UnitOfWork,
	clock sharedDomain.Clock,
	metrics observability.Metrics,
) *RecomputeHandler {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &RecomputeHandler{
		taskRepo: taskRepo,
		areaRepo: areaRepo,
		runRepo:  runRepo,
		engine:   engine,
		cache:    scoreCache,
		uow:      uow,
		clock:    clock,
		metrics:  metrics,
	}
}

// Handle executes the RecomputeCommand.
func (h *RecomputeHandler) Handle(ctx context.Context, cmd RecomputeCommand) (*RecomputeResult, error) {
	start := time.Now()
	now := h.clock.Now()
	scoreCtx := domain.Context{Now: now, CurrentAreaID: cmd.CurrentAreaID, DeepWork: cmd.DeepWork}

	var ranked []domain.ScoredTask
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		tasks, err := h.taskRepo.FindActionable(txCtx, cmd.UserID, cmd.AreaID, cmd.ProjectID)
		if err != nil {
			return err
		}
		blocked, err := h.taskRepo.UnresolvedDependencies(txCtx, cmd.UserID)
		if err != nil {
			return err
		}
		areas, err := h.areaLookup(txCtx, cmd.UserID, tasks)
		if err != nil {
			return err
		}

		ranked = make([]domain.ScoredTask, 0, len(tasks))
		for _, t := range tasks {
			result := h.engine.Score(toInput(t, blocked[t.ID()]), scoreCtx)
			if err := h.runRepo.Save(txCtx, domain.NewRun(cmd.UserID, t.ID(), result, scoreCtx)); err != nil {
				return err
			}
			ranked = append(ranked, toScoredTask(t, areas[t.AreaID()], result))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to recompute scores: %w", err)
	}

	domain.SortByScore(ranked)
	_ = h.cache.Put(ctx, cmd.UserID, cache.Snapshot{Tasks: ranked, ScoredAt: now})

	h.metrics.Counter(MetricRecomputeTasks, int64(len(ranked)))
	h.metrics.Timing(MetricRecomputeDuration, time.Since(start))

	return &RecomputeResult{
		Shortlist: domain.NewShortlist(ranked),
		ScoredAt:  now,
		Scored:    len(ranked),
	}, nil
}

// areaLookup resolves the areas referenced by tasks, archived ones included.
func (h *RecomputeHandler) areaLookup(ctx context.Context, userID uuid.UUID, tasks []*task.Task) (map[uuid.UUID]*area.Area, error) {
	areas := make(map[uuid.UUID]*area.Area)
	if len(tasks) == 0 {
		return areas, nil
	}
	active, err := h.areaRepo.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, a := range active {
		areas[a.ID()] = a
	}
	for _, t := range tasks {
		if _, ok := areas[t.AreaID()]; ok {
			continue
		}
		a, err := h.areaRepo.FindByID(ctx, userID, t.AreaID())
		if errors.Is(err, area.ErrAreaNotFound) {
			areas[t.AreaID()] = nil
			continue
		}
		if err != nil {
			return nil, err
		}
		areas[a.ID()] = a
	}
	return areas, nil
}

func toInput(t *task.Task, hasUnresolvedDeps bool) domain.Input {
	ratings := t.Ratings()
	return domain.Input{
		TaskID:            t.ID(),
		AreaID:            t.AreaID(),
		Status:            string(t.Status()),
		DeadlineAt:        t.DeadlineAt(),
		SnoozedUntil:      t.SnoozedUntil(),
		EffortMinutes:     t.EffortMinutes(),
		Impact:            ratings.Impact,
		Urgency:           ratings.Urgency,
		StrategicValue:    ratings.StrategicValue,
		RiskOfDelay:       ratings.RiskOfDelay,
		IsBlocker:         t.IsBlocker(),
		LastTouchedAt:     t.LastTouchedAt(),
		CreatedAt:         t.CreatedAt(),
		HasUnresolvedDeps: hasUnresolvedDeps,
	}
}

func toScoredTask(t *task.Task, a *area.Area, result domain.Result) domain.ScoredTask {
	scored := domain.ScoredTask{
		ID:            t.ID(),
		Title:         t.Title(),
		AreaID:        t.AreaID(),
		PriorityScore: result.PriorityScore,
		Explanation:   result.Explanation,
		EffortMinutes: t.EffortMinutes(),
		Energy:        string(t.Energy()),
		Status:        string(t.Status()),
		DeadlineAt:    t.DeadlineAt(),
	}
	if a != nil {
		scored.AreaName = a.Name()
		scored.AreaColor = a.Color()
	}
	return scored
}
