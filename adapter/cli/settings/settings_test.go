package settings

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/focusos/adapter/cli/clitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsCommands(t *testing.T) {
	app := clitest.NewApp(t)

	out, err := clitest.Run(t, Cmd, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Available minutes: 240")
	assert.Contains(t, out, "Deep work:         false")

	out, err = clitest.Run(t, Cmd, "set", "--minutes", "300", "--deep-work")
	require.NoError(t, err)
	assert.Contains(t, out, "Available minutes: 300")
	assert.Contains(t, out, "Deep work:         true")

	prefs, err := app.SettingsService.Get(context.Background(), app.CurrentUserID)
	require.NoError(t, err)
	assert.Equal(t, 300, prefs.DefaultAvailableMinutes)
	assert.True(t, prefs.DeepWorkEnabled)
}

func TestSettingsCommands_RejectsNonPositiveMinutes(t *testing.T) {
	clitest.NewApp(t)

	_, err := clitest.Run(t, Cmd, "set", "--minutes", "0")
	assert.Error(t, err)
}
