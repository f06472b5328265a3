// Package database manages the shared SQL connection pool for PostgreSQL or SQLite
// and applies embedded schema migrations.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/JaimeStill/folio/pkg/lifecycle"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// ErrNotReady indicates the database cannot currently serve queries.
var ErrNotReady = errors.New("database not ready")

// System owns the connection pool and its lifecycle.
type System interface {
	Connection() *sql.DB
	Driver() Driver
	Ping(ctx context.Context) error
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	conn   *sql.DB
	cfg    *Config
	logger *slog.Logger
}

// New opens the connection pool. Connectivity is verified during Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	conn, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	return &database{
		conn:   conn,
		cfg:    cfg,
		logger: logger.With("system", "database", "driver", cfg.Driver),
	}, nil
}

// Open creates a configured *sql.DB for cfg without verifying connectivity.
// SQLite pools are limited to a single connection so writers never contend.
func Open(cfg *Config) (*sql.DB, error) {
	if cfg.Driver == DriverSQLite {
		if dir := filepath.Dir(cfg.Path); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
	}

	conn, err := sql.Open(cfg.Driver.SQLName(), cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
		conn.SetConnMaxLifetime(0)
	} else {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
		conn.SetMaxIdleConns(cfg.MaxIdleConns)
		conn.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())
	}

	return conn, nil
}

func (d *database) Connection() *sql.DB {
	return d.conn
}

func (d *database) Driver() Driver {
	return d.cfg.Driver
}

func (d *database) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.ConnTimeoutDuration())
	defer cancel()

	if err := d.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrNotReady, err)
	}
	return nil
}

func (d *database) Start(lc *lifecycle.Coordinator) error {
	d.logger.Info("starting database system")

	lc.OnStartup(func() {
		if err := d.Ping(lc.Context()); err != nil {
			d.logger.Error("database ping failed", "error", err)
			return
		}
		d.logger.Info("database connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.logger.Info("closing database connection")

		if err := d.conn.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
			return
		}
		d.logger.Info("database connection closed")
	})

	return nil
}
