package main

import (
	"database/sql"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-crm/internal/config"
	"github.com/xavierca1/ligue-crm/internal/infra/database"
	"github.com/xavierca1/ligue-crm/internal/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFile string
	LogFile string
}

// app is what every subcommand needs after the root pre-run.
type app struct {
	cfg *config.Config
	log *zap.Logger
	db  *sql.DB
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "crm",
		Short:         "Ligue CRM - pipeline de leads no terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "arquivo .env opcional")
	cmd.PersistentFlags().StringVar(&opts.LogFile, "log-file", "", "grava logs neste arquivo (padrão: descartar)")

	cmd.AddCommand(newBoardCommand(opts))
	cmd.AddCommand(newImportCommand(opts))
	cmd.AddCommand(newExportCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))

	return cmd
}

// open loads configuration and connects to the database.
func open(opts *RootOptions) (*app, error) {
	_ = godotenv.Load(opts.EnvFile)

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := zap.NewNop()
	if opts.LogFile != "" {
		if log, err = logger.New(cfg.LogLevel, opts.LogFile); err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
	}

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log, db: db}, nil
}

func (a *app) Close() {
	_ = a.log.Sync()
	_ = a.db.Close()
}
