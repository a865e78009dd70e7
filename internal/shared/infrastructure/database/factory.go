package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/security"
)

// Config selects and configures a backend.
type Config struct {
	// Driver may be empty, in which case it is detected from URL.
	Driver     Driver
	URL        string
	SQLitePath string
	MaxConns   int
}

// Opener builds a Connection for one driver.
type Opener func(ctx context.Context, cfg Config) (Connection, error)

var openers = map[Driver]Opener{}

// RegisterDriver makes a backend available to NewConnection. Called from the
// init of the postgres and sqlite packages.
func RegisterDriver(driver Driver, open Opener) {
	openers[driver] = open
}

// NewConnection opens a connection for cfg.
func NewConnection(ctx context.Context, cfg Config) (Connection, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DetectDriver(cfg.URL)
	}
	open, ok := openers[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
	return open(ctx, cfg)
}

// DefaultSQLitePath is ~/.focusos/focusos.db.
func DefaultSQLitePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".focusos", "focusos.db")
}

// EnsureDirectory validates path and creates its parent directory.
func EnsureDirectory(path string) error {
	cleanPath, err := security.ValidateFilePath(path)
	if err != nil {
		return err
	}
	return os.MkdirAll(filepath.Dir(cleanPath), 0o755)
}
