package database

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migrate applies every pending up migration found in source under the
// directory named after the configured driver ("postgres" or "sqlite").
// It uses a dedicated connection that is closed before returning.
func Migrate(cfg *Config, source fs.FS) error {
	m, err := newMigrator(cfg, source)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// MigrateDown reverts the most recent steps migrations.
func MigrateDown(cfg *Config, source fs.FS, steps int) error {
	m, err := newMigrator(cfg, source)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("revert migrations: %w", err)
	}
	return nil
}

// MigrationVersion reports the current schema version and dirty flag.
// A database without migrations reports version 0.
func MigrationVersion(cfg *Config, source fs.FS) (uint, bool, error) {
	m, err := newMigrator(cfg, source)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func newMigrator(cfg *Config, source fs.FS) (*migrate.Migrate, error) {
	src, err := iofs.New(source, string(cfg.Driver))
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}

	conn, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	var driver migratedb.Driver
	switch cfg.Driver {
	case DriverSQLite:
		driver, err = migratesqlite.WithInstance(conn, &migratesqlite.Config{})
	default:
		driver, err = migratepgx.WithInstance(conn, &migratepgx.Config{})
	}
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(cfg.Driver), driver)
	if err != nil {
		driver.Close()
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}
