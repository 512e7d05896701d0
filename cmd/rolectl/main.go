package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/G00gleKid/demo-code/pkg/config"
	"github.com/G00gleKid/demo-code/pkg/database"
	"github.com/G00gleKid/demo-code/pkg/logging"
)

// App holds the application dependencies
type App struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	ctx    context.Context
}

var app *App

func main() {
	rootCmd := &cobra.Command{
		Use:   "rolectl",
		Short: "Role assignment admin CLI",
		Long:  `Administrative commands for the role assignment service: schema migration, team leads, assignment runs and the role catalog.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				_ = app.logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(createUserCmd())
	rootCmd.AddCommand(assignCmd())
	rootCmd.AddCommand(catalogCmd())
	rootCmd.AddCommand(teamsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp loads configuration and the logger. The database is opened on demand.
func initApp() error {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app = &App{cfg: cfg, logger: logger, ctx: context.Background()}
	return nil
}

// openDB connects and migrates the schema
func (a *App) openDB() (*database.Store, error) {
	if a.db == nil {
		a.logger.Debug("Connecting to database", zap.Bool("postgres", a.cfg.DatabaseURL != ""))
		db, err := database.InitDB(database.Options{DSN: a.cfg.DatabaseURL, DataPath: a.cfg.DataPath})
		if err != nil {
			return nil, err
		}
		a.db = db
	}
	return database.NewStore(a.db), nil
}
