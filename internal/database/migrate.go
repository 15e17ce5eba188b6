// Package database manages the PostgreSQL schema and contents of the
// reference tables.
package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	apperrors "github.com/seanankenbruck/ti-bot/internal/errors"
	"github.com/seanankenbruck/ti-bot/internal/observability"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// MigrationConfig holds migration configuration. An empty MigrationsPath
// uses the migrations compiled into the binary.
type MigrationConfig struct {
	DatabaseURL    string
	MigrationsPath string
}

// Migrator applies schema migrations to one database
type Migrator struct {
	db *sql.DB
	m  *migrate.Migrate
}

// NewMigrator opens the database and prepares the migration source
func NewMigrator(config MigrationConfig, logger *observability.Logger) (*Migrator, error) {
	db, err := sql.Open("postgres", config.DatabaseURL)
	if err != nil {
		return nil, apperrors.NewDatabaseConnectionError(err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	var m *migrate.Migrate
	if config.MigrationsPath != "" {
		m, err = migrate.NewWithDatabaseInstance("file://"+config.MigrationsPath, "postgres", driver)
	} else {
		var src source.Driver
		src, err = iofs.New(embeddedMigrations, "migrations")
		if err == nil {
			m, err = migrate.NewWithInstance("iofs", src, "postgres", driver)
		}
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if logger != nil {
		m.Log = &migrateLogger{logger: logger}
	}

	return &Migrator{db: db, m: m}, nil
}

// Up applies every pending migration. Being up to date is not an error.
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperrors.NewMigrationError(err, "up")
	}
	return nil
}

// Down rolls back every applied migration
func (mg *Migrator) Down() error {
	if err := mg.m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperrors.NewMigrationError(err, "down")
	}
	return nil
}

// Steps applies n migrations, or rolls back -n when n is negative
func (mg *Migrator) Steps(n int) error {
	if err := mg.m.Steps(n); err != nil {
		direction := "up"
		if n < 0 {
			direction = "down"
		}
		return apperrors.NewMigrationError(err, direction)
	}
	return nil
}

// Version returns the applied version. A fresh database reports 0.
func (mg *Migrator) Version() (version uint, dirty bool, err error) {
	version, dirty, err = mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// Force marks version as applied without running it, clearing a dirty state
func (mg *Migrator) Force(version int) error {
	return mg.m.Force(version)
}

// DB returns the underlying connection for seeding
func (mg *Migrator) DB() *sql.DB {
	return mg.db
}

// Close releases the migration source and the database
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	if srcErr != nil {
		return srcErr
	}
	return dbErr
}

// RunMigrations applies every pending migration
func RunMigrations(config MigrationConfig, logger *observability.Logger) error {
	mg, err := NewMigrator(config, logger)
	if err != nil {
		return err
	}
	defer mg.Close()

	return mg.Up()
}

// referenceTables must exist before the postgres table source can load
var referenceTables = []string{"rooms", "departments", "general_qa"}

// HealthCheck verifies connectivity and that the reference tables exist
func HealthCheck(ctx context.Context, db *sql.DB) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	for _, table := range referenceTables {
		var exists bool
		err := db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM information_schema.tables WHERE table_name = $1)`, table,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check table %s: %w", table, err)
		}
		if !exists {
			return fmt.Errorf("table %s does not exist, run migrations first", table)
		}
	}

	return nil
}

// migrateLogger routes golang-migrate progress into the structured logger
type migrateLogger struct {
	logger *observability.Logger
}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)), nil)
}

func (l *migrateLogger) Verbose() bool {
	return false
}
