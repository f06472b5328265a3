// Package dbtest opens migrated SQLite databases for package tests.
package dbtest

import (
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/folio/migrations"
	"github.com/JaimeStill/folio/pkg/database"
)

// Config returns a finalized SQLite configuration rooted in a test temp dir.
func Config(t testing.TB) *database.Config {
	t.Helper()

	cfg := &database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "folio.db"),
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize database config: %v", err)
	}
	return cfg
}

// Open migrates a fresh SQLite database and returns a connection to it.
// The connection is closed when the test ends.
func Open(t testing.TB) *sql.DB {
	t.Helper()

	cfg := Config(t)
	if err := database.Migrate(cfg, migrations.FS); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// Logger returns a logger that discards output.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
