package app

import (
	"github.com/spf13/cobra"

	"github.com/spoolkeeper/spoolkeeper/internal/config"
	"github.com/spoolkeeper/spoolkeeper/internal/db"
	"github.com/spoolkeeper/spoolkeeper/internal/logger"
	"github.com/spoolkeeper/spoolkeeper/internal/migrate"

	// Register the data migrations.
	_ "github.com/spoolkeeper/spoolkeeper/internal/migrate/migrations"
)

func init() { //nolint: gochecknoinits
	migrateCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the configuration directory")
	downCmd.Flags().IntVar(&downSteps, "steps", 1, "Number of migrations to revert")

	migrateCmd.AddCommand(upCmd)
	migrateCmd.AddCommand(downCmd)
	migrateCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(migrateCmd)
}

var (
	configPath string // Path to the configuration directory

	cfg       config.Config
	downSteps int

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Manage data migrations for the settings store",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error

			if cfg, err = config.ReadConfig(configPath); err != nil {
				return err
			}

			return logger.Init(cfg.Log)
		},
	}

	upCmd = &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			runner, err := newRunner()
			if err != nil {
				return err
			}

			return runner.Up()
		},
	}

	downCmd = &cobra.Command{
		Use:   "down",
		Short: "Revert the most recently applied migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			runner, err := newRunner()
			if err != nil {
				return err
			}

			return runner.Down(downSteps)
		},
	}

	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			runner, err := newRunner()
			if err != nil {
				return err
			}

			return runner.PrintStatus()
		},
	}
)

func newRunner() (*migrate.Runner, error) {
	gormDB, err := db.Open(&cfg)
	if err != nil {
		return nil, err
	}

	return migrate.NewRunner(gormDB), nil
}
