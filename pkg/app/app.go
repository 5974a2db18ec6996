package app

import (
	"context"
	"fmt"

	"kanbanboard/pkg/cleandb"
	"kanbanboard/pkg/common"
	"kanbanboard/pkg/common/config"
	"kanbanboard/pkg/common/database"
	"kanbanboard/pkg/common/logger"
	"kanbanboard/pkg/common/worker"
	"kanbanboard/pkg/models"
	"kanbanboard/pkg/schema"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// inspectWorkers bounds concurrent row counts during inspection.
const inspectWorkers = 4

type flags struct {
	configPath string
	driver     string
	dsn        string
	force      bool
	dryRun     bool
	verbose    bool
}

// Execute runs the cleandb command with os.Args.
func Execute(ctx context.Context) error {
	return NewCommand().ExecuteContext(ctx)
}

// NewCommand builds the cleandb root command.
func NewCommand() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "cleandb",
		Short: "Drop and recreate every kanban table",
		Long: `cleandb wipes the kanban database and recreates an empty schema
matching the current model definitions.

All rows in every known table are lost. Nothing is backed up.`,
		Example: `  # Ask for confirmation first
  cleandb

  # Reset without asking
  cleandb --force

  # Show what would be removed
  cleandb --dry-run`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f)
		},
	}

	cmd.Flags().BoolVar(&f.force, "force", false, "skip the confirmation prompt")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "list tables and row counts without changing anything")
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "directory containing config.json")
	cmd.Flags().StringVar(&f.driver, "driver", "", "database driver (sqlite or postgres), overrides config")
	cmd.Flags().StringVar(&f.dsn, "dsn", "", "database DSN, overrides config")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func run(cmd *cobra.Command, f flags) error {
	cfg, err := common.Init(f.configPath)
	if err != nil {
		return err
	}
	if f.verbose {
		logger.SetLevel(zerolog.DebugLevel)
	}
	if f.driver != "" {
		cfg.Database.Driver = f.driver
	}
	if f.dsn != "" {
		cfg.Database.DSN = f.dsn
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	log := logger.WithFields(map[string]any{
		"driver":  cfg.Database.Driver,
		"force":   f.force,
		"dry_run": f.dryRun,
	})
	if common.IsDebug() {
		log.Debug().Msg("debug mode enabled by config")
	}
	log.Debug().Msg("starting cleandb")

	if err := worker.Init(inspectWorkers); err != nil {
		return fmt.Errorf("worker pool init failed: %w", err)
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn().Err(err).Msg("closing database")
		}
	}()

	resetter := schema.New(db, models.Default)
	opts := cleandb.Options{Force: f.force, DryRun: f.dryRun}
	result, err := cleandb.Run(cmd.Context(), resetter, opts, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	log.Debug().Stringer("result", result).Msg("cleandb finished")
	return nil
}
