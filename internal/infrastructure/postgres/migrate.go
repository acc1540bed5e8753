package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"

	_ "github.com/lib/pq"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"github.com/fastygo/dualseed/internal/config"
	"github.com/fastygo/dualseed/repository"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrator bootstraps the seeding tables from the embedded migrations.
type Migrator struct {
	cfg     config.RelationalConfig
	enabled bool
	logger  *zap.Logger
}

// NewMigrator returns a SchemaBootstrapper; a disabled migrator is a no-op.
func NewMigrator(cfg config.RelationalConfig, enabled bool, logger *zap.Logger) *Migrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Migrator{cfg: cfg, enabled: enabled, logger: logger}
}

// EnsureSchema applies pending migrations. Every statement is
// CREATE TABLE IF NOT EXISTS, so tables created by hand are left untouched.
func (m *Migrator) EnsureSchema(ctx context.Context) error {
	if m == nil || !m.enabled {
		return nil
	}

	sqlDB, err := sql.Open("postgres", m.cfg.URL)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return err
	}

	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return err
	}

	mg, err := migrate.NewWithInstance("iofs", src, m.cfg.Name, driver)
	if err != nil {
		return err
	}
	defer mg.Close()

	if err := mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	m.logger.Info("relational schema ready")
	return nil
}

var _ repository.SchemaBootstrapper = (*Migrator)(nil)
