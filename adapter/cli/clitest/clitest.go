// Package clitest wires a throwaway SQLite container behind the CLI for
// command tests.
package clitest

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/felixgeelhaar/focusos/adapter/cli"
	internalApp "github.com/felixgeelhaar/focusos/internal/app"
	"github.com/felixgeelhaar/focusos/internal/productivity/application/commands"
	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/focusos/pkg/config"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// Now is the fixed instant every test app runs at.
var Now = time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)

// NewApp builds a local-mode app and installs it as the global CLI app.
func NewApp(t *testing.T) *cli.App {
	t.Helper()

	cfg := &config.Config{
		AppEnv:        "test",
		UserID:        config.DefaultUserID,
		TimeZone:      "UTC",
		SQLitePath:    filepath.Join(t.TempDir(), "focusos.db"),
		ScoreReuseTTL: 10 * time.Minute,
	}
	container, err := internalApp.NewContainerWithOptions(context.Background(), cfg, nil, internalApp.Options{
		Clock:     sharedDomain.NewFixedClock(Now),
		Publisher: eventbus.NewMemoryPublisher(),
	})
	require.NoError(t, err)

	app := cli.NewApp(container)
	cli.SetApp(app)
	t.Cleanup(func() {
		cli.SetApp(nil)
		container.Close()
	})
	return app
}

// Area creates an area for the current user.
func Area(t *testing.T, app *cli.App, name string) uuid.UUID {
	t.Helper()
	id, err := app.CreateAreaHandler.Handle(context.Background(), commands.CreateAreaCommand{
		UserID: app.CurrentUserID,
		Name:   name,
	})
	require.NoError(t, err)
	return id
}

// Run executes cmd with args and returns everything it printed.
func Run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}
