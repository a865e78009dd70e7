// Package dbtest opens migrated throwaway SQLite databases for repository tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/focusos/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/migrations"
)

// Open returns a migrated SQLite connection closed at test cleanup.
func Open(t testing.TB) database.Connection {
	t.Helper()
	ctx := context.Background()

	conn, err := database.NewConnection(ctx, database.Config{
		Driver:     database.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "focusos.db"),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := migrations.Run(ctx, conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}
