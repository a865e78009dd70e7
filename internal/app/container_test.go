package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/felixgeelhaar/focusos/internal/identity/application/session"
	inboxCommands "github.com/felixgeelhaar/focusos/internal/inbox/application/commands"
	planningCommands "github.com/felixgeelhaar/focusos/internal/planning/application/commands"
	planningQueries "github.com/felixgeelhaar/focusos/internal/planning/application/queries"
	"github.com/felixgeelhaar/focusos/internal/productivity/application/commands"
	scoringCommands "github.com/felixgeelhaar/focusos/internal/scoring/application/commands"
	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/focusos/pkg/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContainer(t *testing.T, mutate func(*config.Config)) (*Container, *eventbus.MemoryPublisher) {
	t.Helper()
	cfg := &config.Config{
		AppEnv:        "test",
		UserID:        config.DefaultUserID,
		TimeZone:      "America/Chicago",
		SQLitePath:    filepath.Join(t.TempDir(), "data", "focusos.db"),
		ScoreReuseTTL: 10 * time.Minute,
	}
	if mutate != nil {
		mutate(cfg)
	}
	publisher := eventbus.NewMemoryPublisher()
	clock := sharedDomain.NewFixedClock(time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC))

	c, err := NewContainerWithOptions(context.Background(), cfg, nil, Options{Clock: clock, Publisher: publisher})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c, publisher
}

func TestNewContainer_LocalMode(t *testing.T) {
	c, _ := newTestContainer(t, nil)

	assert.Equal(t, database.DriverSQLite, c.DB.Driver())
	assert.Nil(t, c.RedisClient)
	assert.NotNil(t, c.ScoreCache)
	assert.Equal(t, uuid.MustParse(config.DefaultUserID), c.UserID)

	_, err := c.Sessions.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, session.ErrNoSession)

	results := c.Health.Check(context.Background())
	require.Contains(t, results, "database")
}

func TestNewContainer_TestAuth(t *testing.T) {
	testUser := uuid.New()
	c, _ := newTestContainer(t, func(cfg *config.Config) {
		cfg.TestAuth = true
		cfg.TestUserID = testUser.String()
	})

	got, err := c.Sessions.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, testUser, got)
}

func TestNewContainer_InvalidUser(t *testing.T) {
	cfg := &config.Config{UserID: "not-a-uuid", TimeZone: "UTC"}
	_, err := NewContainer(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestContainer_PlanFlow(t *testing.T) {
	ctx := context.Background()
	c, publisher := newTestContainer(t, nil)
	userID := c.UserID

	areaID, err := c.CreateAreaHandler.Handle(ctx, commands.CreateAreaCommand{UserID: userID, Name: "Work"})
	require.NoError(t, err)

	for _, title := range []string{"Write report", "Review PR", "Plan sprint"} {
		_, err := c.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{UserID: userID, AreaID: areaID, Title: title})
		require.NoError(t, err)
	}

	triaged, err := c.CaptureHandler.Handle(ctx, inboxCommands.CaptureCommand{UserID: userID, RawText: "Email the landlord"})
	require.NoError(t, err)
	_, err = c.TriageHandler.Handle(ctx, inboxCommands.TriageCommand{
		UserID: userID, ItemID: triaged.ItemID, Type: "task", AreaID: &areaID,
	})
	require.NoError(t, err)

	first, err := c.GeneratePlanHandler.Handle(ctx, planningCommands.GeneratePlanCommand{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", first.PlanDate)
	assert.False(t, first.Inputs.ReusedScores)

	planned := 0
	for _, b := range first.Plan.Buckets {
		planned += len(b.Tasks)
	}
	assert.Equal(t, 4, planned)

	second, err := c.GeneratePlanHandler.Handle(ctx, planningCommands.GeneratePlanCommand{UserID: userID})
	require.NoError(t, err)
	assert.True(t, second.Inputs.ReusedScores)
	assert.Equal(t, first.ID, second.ID)

	today, err := c.GetTodayPlanHandler.Handle(ctx, planningQueries.GetTodayPlanQuery{UserID: userID})
	require.NoError(t, err)
	require.NotNil(t, today)
	assert.Equal(t, first.ID, today.ID)

	assert.NotEmpty(t, publisher.Messages())
}

func TestContainer_ReusesStoredScoresAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "focusos.db")
	start := time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)
	cfg := &config.Config{
		AppEnv:        "test",
		UserID:        config.DefaultUserID,
		TimeZone:      "America/Chicago",
		SQLitePath:    path,
		ScoreReuseTTL: 10 * time.Minute,
	}
	open := func(at time.Time) *Container {
		c, err := NewContainerWithOptions(ctx, cfg, nil, Options{
			Clock:     sharedDomain.NewFixedClock(at),
			Publisher: eventbus.NewMemoryPublisher(),
		})
		require.NoError(t, err)
		return c
	}

	first := open(start)
	userID := first.UserID
	areaID, err := first.CreateAreaHandler.Handle(ctx, commands.CreateAreaCommand{UserID: userID, Name: "Work"})
	require.NoError(t, err)
	var taskIDs []uuid.UUID
	for _, title := range []string{"Write report", "Review PR"} {
		created, err := first.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{UserID: userID, AreaID: areaID, Title: title})
		require.NoError(t, err)
		taskIDs = append(taskIDs, created.TaskID)
	}
	_, err = first.RecomputeHandler.Handle(ctx, scoringCommands.RecomputeCommand{UserID: userID})
	require.NoError(t, err)
	first.Close()

	second := open(start.Add(3 * time.Minute))
	t.Cleanup(second.Close)

	plan, err := second.GeneratePlanHandler.Handle(ctx, planningCommands.GeneratePlanCommand{UserID: userID})
	require.NoError(t, err)
	assert.True(t, plan.Inputs.ReusedScores)
	assert.True(t, plan.Inputs.ScoredAt.Equal(start))
	for _, id := range taskIDs {
		runs, err := second.Repos.Runs.ListByTask(ctx, userID, id, 0)
		require.NoError(t, err)
		assert.Len(t, runs, 1)
	}

	require.NoError(t, second.CompleteTaskHandler.Handle(ctx, commands.CompleteTaskCommand{UserID: userID, TaskID: taskIDs[0]}))
	replanned, err := second.GeneratePlanHandler.Handle(ctx, planningCommands.GeneratePlanCommand{UserID: userID})
	require.NoError(t, err)
	assert.False(t, replanned.Inputs.ReusedScores)
}
