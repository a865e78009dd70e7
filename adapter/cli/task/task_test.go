package task

import (
	"context"
	"strings"
	"testing"

	"github.com/felixgeelhaar/focusos/adapter/cli/clitest"
	"github.com/felixgeelhaar/focusos/internal/productivity/application/queries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskCommands_Lifecycle(t *testing.T) {
	app := clitest.NewApp(t)
	areaID := clitest.Area(t, app, "Work")
	ctx := context.Background()

	out, err := clitest.Run(t, Cmd, "add", "Write report", "--area", areaID.String(), "--effort", "45", "--deadline", "2d")
	require.NoError(t, err)
	assert.Contains(t, out, "Task created:")

	tasks, err := app.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{UserID: app.CurrentUserID})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	created := tasks[0]
	assert.Equal(t, "Write report", created.Title)
	require.NotNil(t, created.EffortMinutes)
	assert.Equal(t, 45, *created.EffortMinutes)
	require.NotNil(t, created.DeadlineAt)
	assert.True(t, clitest.Now.AddDate(0, 0, 2).Equal(*created.DeadlineAt))
	id := created.ID.String()

	out, err = clitest.Run(t, Cmd, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "45m")

	out, err = clitest.Run(t, Cmd, "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Title:       Write report")
	assert.Contains(t, out, "Status:      NEXT")

	_, err = clitest.Run(t, Cmd, "update", id, "--title", "Write Q1 report", "--urgency", "5")
	require.NoError(t, err)
	got, err := app.GetTaskHandler.Handle(ctx, queries.GetTaskQuery{TaskID: created.ID, UserID: app.CurrentUserID})
	require.NoError(t, err)
	assert.Equal(t, "Write Q1 report", got.Title)
	assert.Equal(t, 5, got.Urgency)

	out, err = clitest.Run(t, Cmd, "complete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Task completed")
	got, err = app.GetTaskHandler.Handle(ctx, queries.GetTaskQuery{TaskID: created.ID, UserID: app.CurrentUserID})
	require.NoError(t, err)
	assert.Equal(t, "DONE", got.Status)
	assert.NotNil(t, got.CompletedAt)
}

func TestTaskCommands_AddRequiresArea(t *testing.T) {
	clitest.NewApp(t)
	addArea = ""

	_, err := clitest.Run(t, Cmd, "add", "Orphan")
	assert.Error(t, err)
}

func TestTaskCommands_ShowUnknownTask(t *testing.T) {
	clitest.NewApp(t)

	_, err := clitest.Run(t, Cmd, "show", "1b4e28ba-2fa1-11d2-883f-0016d3cca427")
	assert.Error(t, err)
}

func TestTaskCommands_SnoozeSplitDepend(t *testing.T) {
	app := clitest.NewApp(t)
	areaID := clitest.Area(t, app, "Home")
	ctx := context.Background()

	_, err := clitest.Run(t, Cmd, "add", "Move house", "--area", areaID.String())
	require.NoError(t, err)
	_, err = clitest.Run(t, Cmd, "add", "Book van", "--area", areaID.String())
	require.NoError(t, err)

	tasks, err := app.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{UserID: app.CurrentUserID})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	byTitle := map[string]queries.TaskDTO{}
	for _, tk := range tasks {
		byTitle[tk.Title] = tk
	}
	move := byTitle["Move house"]
	van := byTitle["Book van"]

	snoozeUntil = ""
	_, err = clitest.Run(t, Cmd, "snooze", move.ID.String())
	assert.Error(t, err)

	out, err := clitest.Run(t, Cmd, "snooze", van.ID.String(), "--until", "2025-03-20")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-03-20")
	got, err := app.GetTaskHandler.Handle(ctx, queries.GetTaskQuery{TaskID: van.ID, UserID: app.CurrentUserID})
	require.NoError(t, err)
	require.NotNil(t, got.SnoozedUntil)

	out, err = clitest.Run(t, Cmd, "split", move.ID.String(), "--subtask", "Pack boxes:90", "--subtask", "Clean flat")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Subtask created:"))

	out, err = clitest.Run(t, Cmd, "depend", move.ID.String(), "--on", van.ID.String())
	require.NoError(t, err)
	assert.Contains(t, out, "now depends on")

	_, err = clitest.Run(t, Cmd, "depend", move.ID.String(), "--on", move.ID.String())
	assert.Error(t, err)
}

func TestParseSubtask(t *testing.T) {
	st := parseSubtask("First draft:90")
	assert.Equal(t, "First draft", st.Title)
	require.NotNil(t, st.EffortMinutes)
	assert.Equal(t, 90, *st.EffortMinutes)

	st = parseSubtask("Call: landlord")
	assert.Equal(t, "Call: landlord", st.Title)
	assert.Nil(t, st.EffortMinutes)

	st = parseSubtask("  Outline ")
	assert.Equal(t, "Outline", st.Title)
}
