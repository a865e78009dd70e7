package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/focusos/internal/identity/application/settings"
	"github.com/felixgeelhaar/focusos/internal/planning/domain"
	"github.com/felixgeelhaar/focusos/internal/scoring/application/cache"
	scoringCommands "github.com/felixgeelhaar/focusos/internal/scoring/application/commands"
	scoring "github.com/felixgeelhaar/focusos/internal/scoring/domain"
	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPlanRepo struct {
	mock.Mock
}

func (m *mockPlanRepo) Upsert(ctx context.Context, plan *domain.DailyPlan) error {
	return m.Called(ctx, plan).Error(0)
}

func (m *mockPlanRepo) FindByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.DailyPlan, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyPlan), args.Error(1)
}

type mockRecomputer struct {
	mock.Mock
}

func (m *mockRecomputer) Handle(ctx context.Context, cmd scoringCommands.RecomputeCommand) (*scoringCommands.RecomputeResult, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scoringCommands.RecomputeResult), args.Error(1)
}

type stubPrefs struct {
	prefs settings.Preferences
	err   error
}

func (s stubPrefs) Get(context.Context, uuid.UUID) (settings.Preferences, error) {
	return s.prefs, s.err
}

type stubRecent struct {
	scores []scoring.RecentScore
	err    error
	since  time.Time
	calls  int
}

func (s *stubRecent) ListRecent(_ context.Context, _ uuid.UUID, since time.Time) ([]scoring.RecentScore, error) {
	s.calls++
	s.since = since
	return s.scores, s.err
}

type stubChanges struct {
	at  time.Time
	err error
}

func (s stubChanges) LastChangedAt(context.Context, uuid.UUID) (time.Time, error) {
	return s.at, s.err
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, userID uuid.UUID) (*cache.Snapshot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cache.Snapshot), args.Error(1)
}

func (m *mockCache) Put(ctx context.Context, userID uuid.UUID, snapshot cache.Snapshot) error {
	return m.Called(ctx, userID, snapshot).Error(0)
}

func (m *mockCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Record(ctx context.Context, userID uuid.UUID, events ...sharedDomain.DomainEvent) error {
	return m.Called(ctx, userID, events).Error(0)
}

func (m *mockRecorder) Announce(ctx context.Context, events ...sharedDomain.DomainEvent) {
	m.Called(ctx, events)
}

type txKey struct{}

// 03:30 UTC on the 15th is the evening of the 14th in Chicago.
var now = time.Date(2025, 3, 15, 3, 30, 0, 0, time.UTC)

type fixture struct {
	ctx, txCtx context.Context
	userID     uuid.UUID
	plans      *mockPlanRepo
	recompute  *mockRecomputer
	cache      cache.Cache
	recent     *stubRecent
	changes    stubChanges
	prefs      stubPrefs
	recorder   *mockRecorder
	uow        *mockUnitOfWork
	clock      *sharedDomain.FixedClock
}

func newFixture() *fixture {
	ctx := context.Background()
	clock := sharedDomain.NewFixedClock(now)
	return &fixture{
		ctx:       ctx,
		txCtx:     context.WithValue(ctx, txKey{}, "tx"),
		userID:    uuid.New(),
		plans:     new(mockPlanRepo),
		recompute: new(mockRecomputer),
		cache:     cache.NewMemoryCache(clock, cache.DefaultTTL),
		recent:    &stubRecent{},
		prefs:     stubPrefs{prefs: settings.DefaultPreferences()},
		recorder:  new(mockRecorder),
		uow:       new(mockUnitOfWork),
		clock:     clock,
	}
}

func (f *fixture) handler() *GeneratePlanHandler {
	return NewGeneratePlanHandler(f.plans, f.recompute, f.cache, f.recent, f.changes, f.prefs, f.recorder, f.uow,
		sharedDomain.MustTimeService(f.clock, "America/Chicago"), 0)
}

func (f *fixture) expectSave() {
	f.uow.On("Begin", f.ctx).Return(f.txCtx, nil)
	f.uow.On("Commit", f.txCtx).Return(nil)
	f.plans.On("Upsert", f.txCtx, mock.AnythingOfType("*domain.DailyPlan")).Return(nil)
	f.recorder.On("Record", f.txCtx, f.userID, mock.Anything).Return(nil)
	f.recorder.On("Announce", f.ctx, mock.Anything).Return()
}

func scoredTasks(n, effort int) []scoring.ScoredTask {
	tasks := make([]scoring.ScoredTask, n)
	for i := range tasks {
		tasks[i] = scoring.ScoredTask{ID: uuid.New(), Title: "task", PriorityScore: 90 - i, EffortMinutes: &effort}
	}
	return tasks
}

func TestGeneratePlanHandler_Handle(t *testing.T) {
	t.Run("recomputes on a cold cache", func(t *testing.T) {
		f := newFixture()
		focus := uuid.New()
		f.prefs.prefs.DeepWorkEnabled = true
		f.expectSave()

		ranked := scoredTasks(10, 30)
		f.recompute.On("Handle", f.ctx, scoringCommands.RecomputeCommand{
			UserID:        f.userID,
			CurrentAreaID: &focus,
			DeepWork:      true,
		}).Return(&scoringCommands.RecomputeResult{Shortlist: scoring.NewShortlist(ranked), ScoredAt: now, Scored: 10}, nil)

		plan, err := f.handler().Handle(f.ctx, GeneratePlanCommand{UserID: f.userID, AreaFocusID: &focus})
		require.NoError(t, err)

		assert.Equal(t, "2025-03-14", plan.PlanDate)
		assert.Equal(t, 240, plan.Plan.AvailableMinutes)
		assert.Len(t, plan.Plan.Bucket(domain.BucketMust).Tasks, 5)
		assert.Len(t, plan.Plan.Bucket(domain.BucketShould).Tasks, 3)
		assert.Len(t, plan.Plan.Bucket(domain.BucketCould).Tasks, 2)
		assert.False(t, plan.Inputs.ReusedScores)
		assert.True(t, plan.Inputs.DeepWork)
		assert.Equal(t, &focus, plan.Inputs.AreaFocusID)
		assert.Equal(t, now, plan.GeneratedAt)

		f.recompute.AssertExpectations(t)
		f.plans.AssertExpectations(t)
		f.recorder.AssertExpectations(t)
		f.uow.AssertExpectations(t)
	})

	t.Run("reuses fresh cached scores", func(t *testing.T) {
		f := newFixture()
		f.expectSave()

		ranked := scoredTasks(12, 30)
		scoredAt := now.Add(-5 * time.Minute)
		require.NoError(t, f.cache.Put(f.ctx, f.userID, cache.Snapshot{Tasks: ranked, ScoredAt: scoredAt}))

		plan, err := f.handler().Handle(f.ctx, GeneratePlanCommand{UserID: f.userID})
		require.NoError(t, err)

		assert.True(t, plan.Inputs.ReusedScores)
		assert.Equal(t, scoredAt, plan.Inputs.ScoredAt)
		total := 0
		for _, b := range plan.Plan.Buckets {
			total += len(b.Tasks)
		}
		assert.Equal(t, scoring.NextSize, total)
		assert.Equal(t, 90, plan.Plan.Bucket(domain.BucketMust).Tasks[0].PriorityScore)
		f.recompute.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("stale cache recomputes", func(t *testing.T) {
		f := newFixture()
		f.expectSave()

		require.NoError(t, f.cache.Put(f.ctx, f.userID, cache.Snapshot{Tasks: scoredTasks(3, 30), ScoredAt: now.Add(-11 * time.Minute)}))
		f.recompute.On("Handle", f.ctx, mock.Anything).
			Return(&scoringCommands.RecomputeResult{Shortlist: scoring.NewShortlist(nil), ScoredAt: now}, nil)

		plan, err := f.handler().Handle(f.ctx, GeneratePlanCommand{UserID: f.userID})
		require.NoError(t, err)
		assert.False(t, plan.Inputs.ReusedScores)
		f.recompute.AssertExpectations(t)
	})

	t.Run("cache failure is a miss", func(t *testing.T) {
		f := newFixture()
		broken := new(mockCache)
		broken.On("Get", f.ctx, f.userID).Return(nil, errors.New("connection refused"))
		f.cache = broken
		f.expectSave()
		f.recompute.On("Handle", f.ctx, mock.Anything).
			Return(&scoringCommands.RecomputeResult{Shortlist: scoring.NewShortlist(scoredTasks(2, 30)), ScoredAt: now}, nil)

		plan, err := f.handler().Handle(f.ctx, GeneratePlanCommand{UserID: f.userID})
		require.NoError(t, err)
		assert.Len(t, plan.Plan.Bucket(domain.BucketMust).Tasks, 2)
		f.recompute.AssertExpectations(t)
	})

	t.Run("reuses stored runs when the cache is empty", func(t *testing.T) {
		f := newFixture()
		f.expectSave()
		f.changes.at = now.Add(-20 * time.Minute)

		effort := 30
		scoredAt := now.Add(-4 * time.Minute)
		f.recent.scores = []scoring.RecentScore{
			{ScoredTask: scoring.ScoredTask{ID: uuid.New(), Title: "low", PriorityScore: 40, EffortMinutes: &effort}, ScoredAt: scoredAt.Add(-time.Second)},
			{ScoredTask: scoring.ScoredTask{ID: uuid.New(), Title: "high", PriorityScore: 80, EffortMinutes: &effort}, ScoredAt: scoredAt},
		}

		plan, err := f.handler().Handle(f.ctx, GeneratePlanCommand{UserID: f.userID})
		require.NoError(t, err)

		assert.True(t, plan.Inputs.ReusedScores)
		assert.Equal(t, scoredAt, plan.Inputs.ScoredAt)
		assert.Equal(t, now.Add(-cache.DefaultTTL), f.recent.since)
		must := plan.Plan.Bucket(domain.BucketMust).Tasks
		require.Len(t, must, 2)
		assert.Equal(t, "high", must[0].Title)
		f.recompute.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("stored runs older than a task change are recomputed", func(t *testing.T) {
		f := newFixture()
		f.expectSave()
		f.changes.at = now.Add(-time.Minute)
		f.recent.scores = []scoring.RecentScore{
			{ScoredTask: scoring.ScoredTask{ID: uuid.New(), PriorityScore: 80}, ScoredAt: now.Add(-5 * time.Minute)},
		}
		f.recompute.On("Handle", f.ctx, mock.Anything).
			Return(&scoringCommands.RecomputeResult{Shortlist: scoring.NewShortlist(scoredTasks(1, 30)), ScoredAt: now}, nil)

		plan, err := f.handler().Handle(f.ctx, GeneratePlanCommand{UserID: f.userID})
		require.NoError(t, err)
		assert.False(t, plan.Inputs.ReusedScores)
		f.recompute.AssertExpectations(t)
	})

	t.Run("cached scores older than a task change are not reused", func(t *testing.T) {
		f := newFixture()
		f.expectSave()
		require.NoError(t, f.cache.Put(f.ctx, f.userID, cache.Snapshot{Tasks: scoredTasks(3, 30), ScoredAt: now.Add(-5 * time.Minute)}))
		f.changes.at = now.Add(-2 * time.Minute)
		f.recompute.On("Handle", f.ctx, mock.Anything).
			Return(&scoringCommands.RecomputeResult{Shortlist: scoring.NewShortlist(scoredTasks(2, 30)), ScoredAt: now}, nil)

		plan, err := f.handler().Handle(f.ctx, GeneratePlanCommand{UserID: f.userID})
		require.NoError(t, err)
		assert.False(t, plan.Inputs.ReusedScores)
		assert.Equal(t, 1, f.recent.calls)
		f.recompute.AssertExpectations(t)
	})

	t.Run("task change lookup failure propagates", func(t *testing.T) {
		f := newFixture()
		f.changes.err = errors.New("store unavailable")

		_, err := f.handler().Handle(f.ctx, GeneratePlanCommand{UserID: f.userID})
		assert.ErrorIs(t, err, f.changes.err)
		f.recompute.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("budget comes from option, then preferences", func(t *testing.T) {
		f := newFixture()
		f.prefs.prefs.DefaultAvailableMinutes = 90
		f.expectSave()
		require.NoError(t, f.cache.Put(f.ctx, f.userID, cache.Snapshot{Tasks: scoredTasks(4, 30), ScoredAt: now}))

		plan, err := f.handler().Handle(f.ctx, GeneratePlanCommand{UserID: f.userID})
		require.NoError(t, err)
		assert.Equal(t, 90, plan.Plan.AvailableMinutes)

		minutes := 600
		deep := false
		plan, err = f.handler().Handle(f.ctx, GeneratePlanCommand{UserID: f.userID, AvailableMinutes: &minutes, DeepWork: &deep})
		require.NoError(t, err)
		assert.Equal(t, 600, plan.Plan.AvailableMinutes)
		assert.Len(t, plan.Plan.Bucket(domain.BucketMust).Tasks, 4)
	})

	t.Run("recompute failure propagates", func(t *testing.T) {
		f := newFixture()
		errStore := errors.New("store unavailable")
		f.recompute.On("Handle", f.ctx, mock.Anything).Return(nil, errStore)

		_, err := f.handler().Handle(f.ctx, GeneratePlanCommand{UserID: f.userID})
		assert.ErrorIs(t, err, errStore)
		f.plans.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("upsert failure rolls back", func(t *testing.T) {
		f := newFixture()
		errStore := errors.New("constraint")
		require.NoError(t, f.cache.Put(f.ctx, f.userID, cache.Snapshot{Tasks: scoredTasks(1, 30), ScoredAt: now}))
		f.uow.On("Begin", f.ctx).Return(f.txCtx, nil)
		f.uow.On("Rollback", f.txCtx).Return(nil)
		f.plans.On("Upsert", f.txCtx, mock.Anything).Return(errStore)

		_, err := f.handler().Handle(f.ctx, GeneratePlanCommand{UserID: f.userID})
		assert.ErrorIs(t, err, errStore)
		f.uow.AssertExpectations(t)
		f.recorder.AssertNotCalled(t, "Announce", mock.Anything, mock.Anything)
	})

	t.Run("preferences failure", func(t *testing.T) {
		f := newFixture()
		f.prefs.err = errors.New("settings unavailable")

		_, err := f.handler().Handle(f.ctx, GeneratePlanCommand{UserID: f.userID})
		assert.ErrorIs(t, err, f.prefs.err)
	})
}
