package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theCalcaholic/findus/internal/infrastructure/config"
	"github.com/theCalcaholic/findus/internal/infrastructure/logger"
	"github.com/theCalcaholic/findus/internal/infrastructure/postgres"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(false)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(true)
		},
	})

	return cmd
}

func runMigrate(down bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if down {
		return postgres.RunMigrationsDown(cfg.DatabaseURL, log)
	}

	return postgres.RunMigrations(cfg.DatabaseURL, log)
}
