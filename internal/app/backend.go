package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/learning-tracker/internal/config"
	"github.com/phrazzld/learning-tracker/internal/platform/postgres"
	"github.com/phrazzld/learning-tracker/internal/platform/sqlite"
	"github.com/phrazzld/learning-tracker/internal/store"
	"gorm.io/gorm"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrUnsupportedDriver is returned for a database driver other than
// postgres or sqlite.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// ErrUnsupportedMigration is returned for a migration command the backend
// cannot run.
var ErrUnsupportedMigration = errors.New("unsupported migration command")

// Backend is an open storage backend with its stores and transactor.
type Backend struct {
	Driver     string
	Stores     store.Stores
	Transactor store.Transactor

	sqlDB  *sql.DB
	gormDB *gorm.DB
	logger *slog.Logger
}

// OpenBackend connects to the database named by cfg and builds its stores.
func OpenBackend(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "backend"), slog.String("driver", cfg.Driver))

	switch cfg.Driver {
	case DriverPostgres:
		db, err := postgres.Open(ctx, cfg.URL, logger)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Driver:     DriverPostgres,
			Stores:     postgres.NewStores(db, logger),
			Transactor: postgres.NewTransactor(db, logger),
			sqlDB:      db,
			logger:     logger,
		}, nil

	case DriverSQLite:
		db, err := sqlite.Open(cfg.URL, logger)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Driver:     DriverSQLite,
			Stores:     sqlite.NewStores(db, logger),
			Transactor: sqlite.NewTransactor(db, logger),
			gormDB:     db,
			logger:     logger,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Migrate runs a schema migration command. SQLite schemas are managed by
// auto-migration, so only "up" and "status" are accepted there.
func (b *Backend) Migrate(ctx context.Context, command string) error {
	if b.sqlDB != nil {
		return postgres.Migrate(ctx, b.sqlDB, command, b.logger)
	}

	switch command {
	case postgres.MigrateUp:
		return sqlite.Migrate(b.gormDB.WithContext(ctx))
	case postgres.MigrateStatus:
		b.logger.Info("sqlite schema is managed by auto-migration")
		return nil
	default:
		return fmt.Errorf("%w for sqlite: %q", ErrUnsupportedMigration, command)
	}
}

// Close releases the connection pool.
func (b *Backend) Close() error {
	if b.sqlDB != nil {
		return b.sqlDB.Close()
	}
	if b.gormDB != nil {
		return sqlite.Close(b.gormDB)
	}
	return nil
}
