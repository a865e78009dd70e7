package cli

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	internalApp "github.com/felixgeelhaar/focusos/internal/app"
	"github.com/felixgeelhaar/focusos/internal/productivity/application/commands"
	"github.com/felixgeelhaar/focusos/pkg/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCLITestDB(t *testing.T) string {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}
	return dbURL
}

func TestCLIRecomputeAndPlanEndToEnd(t *testing.T) {
	dbURL := setupCLITestDB(t)

	cfg := &config.Config{
		AppEnv:        "development",
		UserID:        config.DefaultUserID,
		TimeZone:      "UTC",
		DatabaseURL:   dbURL,
		RabbitMQURL:   "amqp://invalid",
		ScoreReuseTTL: 10 * time.Minute,
	}

	ctx := context.Background()
	container, err := internalApp.NewContainer(ctx, cfg, nil)
	require.NoError(t, err)
	defer container.Close()

	cliApp := NewApp(container)
	cliApp.SetCurrentUserID(uuid.New())
	SetApp(cliApp)
	defer SetApp(nil)

	areaID, err := cliApp.CreateAreaHandler.Handle(ctx, commands.CreateAreaCommand{
		UserID: cliApp.CurrentUserID,
		Name:   "Work",
	})
	require.NoError(t, err)

	effort := 30
	_, err = cliApp.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{
		UserID:        cliApp.CurrentUserID,
		AreaID:        areaID,
		Title:         "Write integration test",
		EffortMinutes: &effort,
	})
	require.NoError(t, err)

	var out bytes.Buffer
	scoreRecomputeCmd.SetContext(ctx)
	scoreRecomputeCmd.SetOut(&out)
	require.NoError(t, scoreRecomputeCmd.RunE(scoreRecomputeCmd, nil))
	assert.Contains(t, out.String(), "Write integration test")

	out.Reset()
	planGenerateCmd.SetContext(ctx)
	planGenerateCmd.SetOut(&out)
	require.NoError(t, planGenerateCmd.RunE(planGenerateCmd, nil))
	assert.Contains(t, out.String(), "MUST")
	assert.Contains(t, out.String(), "Write integration test")
}
