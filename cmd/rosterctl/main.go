package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gimhantharuke456/policeappbackend/internal/adapters/persistence/models"
	"github.com/gimhantharuke456/policeappbackend/internal/config"
	"github.com/gimhantharuke456/policeappbackend/internal/pkg/logger"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const programName = "rosterctl"

// app holds what every subcommand needs; built once before the command runs
type app struct {
	cfg   *config.Config
	db    *gorm.DB
	debug bool
}

func (a *app) close() {
	if a.db == nil {
		return
	}
	if err := config.CloseDatabase(a.db); err != nil {
		log.Error().Err(err).Msg("❌ Error closing database")
	}
	a.db = nil
}

// openDB connects and migrates on first use
func (a *app) openDB() (*gorm.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := config.ConnectDatabase(a.cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		_ = config.CloseDatabase(db)
		return nil, fmt.Errorf("migrate: %w", err)
	}
	a.db = db
	return db, nil
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Administer the officer roster and voice records",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			level := cfg.Log.Level
			if a.debug {
				level = "debug"
			}
			logger.Init(logger.Config{Level: level, Format: "console", Output: cmd.ErrOrStderr()})
			a.cfg = cfg
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&a.debug, "debug", "D", false, "enable debug logging")

	rootCmd.AddCommand(
		rosterCommand(a),
		audioCommand(a),
	)
	return rootCmd
}

func main() {
	a := &app{}

	err := newRootCommand(a).ExecuteContext(context.Background())
	a.close()
	if err != nil {
		log.Error().Err(err).Msg("❌ " + programName + " failed")
		os.Exit(1)
	}
}
