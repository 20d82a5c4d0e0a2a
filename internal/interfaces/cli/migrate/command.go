// Package migrate implements the migrate CLI command.
package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"lumina/internal/infrastructure/config"
	"lumina/internal/infrastructure/database"
	"lumina/internal/infrastructure/migration"
	"lumina/internal/shared/logger"
)

var configPath string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the config file")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withRunner(func(r *migration.Runner) error {
					return r.Up()
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withRunner(func(r *migration.Runner) error {
					return r.Down()
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show migration status",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withRunner(func(r *migration.Runner) error {
					return r.Status()
				})
			},
		},
	)

	return cmd
}

func withRunner(fn func(*migration.Runner) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	sqlDB, err := database.Get().DB()
	if err != nil {
		return fmt.Errorf("failed to get sql connection: %w", err)
	}

	return fn(migration.NewRunner(sqlDB, logger.NewLogger().Named("migration")))
}
