package migrations_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/focusos/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/migrations"
)

func TestRun_SQLiteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	conn, err := database.NewConnection(ctx, database.Config{
		Driver:     database.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "focusos.db"),
	})
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, migrations.Run(ctx, conn))
	require.NoError(t, migrations.Run(ctx, conn))

	for _, table := range []string{
		"areas", "projects", "tasks", "task_dependencies", "scoring_runs",
		"daily_plans", "user_settings", "activity_log", "inbox_items", "focus_sessions",
	} {
		var name string
		err := conn.QueryRow(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}
