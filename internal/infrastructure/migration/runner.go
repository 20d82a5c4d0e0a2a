// Package migration applies the embedded SQL migrations with goose.
package migration

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	"lumina/internal/shared/logger"
)

//go:embed all:sql
var migrationFS embed.FS

// Runner applies schema migrations against a live connection.
type Runner struct {
	db     *sql.DB
	logger logger.Interface
}

// NewRunner creates a migration runner for the given connection.
func NewRunner(db *sql.DB, log logger.Interface) *Runner {
	return &Runner{
		db:     db,
		logger: log,
	}
}

// Up applies all pending migrations.
func (r *Runner) Up() error {
	goose.SetBaseFS(migrationFS)

	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	before, err := goose.GetDBVersion(r.db)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	if err := goose.Up(r.db, "sql"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	after, err := goose.GetDBVersion(r.db)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	if after > before {
		r.logger.Infow("migrations applied", "from", before, "to", after)
	} else {
		r.logger.Infow("schema up to date", "version", after)
	}
	return nil
}

// Down rolls back the most recent migration.
func (r *Runner) Down() error {
	goose.SetBaseFS(migrationFS)

	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.Down(r.db, "sql"); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	return nil
}

// Status logs the state of each known migration.
func (r *Runner) Status() error {
	goose.SetBaseFS(migrationFS)

	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	return goose.Status(r.db, "sql")
}
