// Package cli wires configuration, storage, and services behind the cobra
// command surface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"task-reminder/internal/config"
	"task-reminder/internal/repository"
	"task-reminder/internal/service"
)

var (
	flagDB       string
	flagSettings string
)

var rootCmd = &cobra.Command{
	Use:           "taskreminder",
	Short:         "Personal task reminders with recurring-task generation and lateness analytics",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "path to the SQLite database (default $TASKREMINDER_DB)")
	rootCmd.PersistentFlags().StringVar(&flagSettings, "settings", "", "path to the user settings file")
}

// ExecuteContext runs the root command under the given context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// app bundles the wired services for one command invocation.
type app struct {
	cfg config.Config
	db  *gorm.DB
	svc *service.TaskService
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if flagDB != "" {
		cfg.DatabasePath = flagDB
	}

	db, err := repository.NewDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}

	taskRepo := repository.NewTaskRepository(db)
	completionRepo := repository.NewCompletionRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	seriesRepo := repository.NewSeriesRepository(db)

	generation := service.NewGenerationService(taskRepo, seriesRepo)
	settings := config.NewSettingsStore(flagSettings)
	svc := service.NewTaskService(taskRepo, completionRepo, categoryRepo, generation, settings)

	if err := svc.EnsureReady(ctx); err != nil {
		closeDB(db)
		return nil, err
	}

	return &app{cfg: cfg, db: db, svc: svc}, nil
}

func (a *app) Close() {
	closeDB(a.db)
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
