package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"weekplanner/internal/attachments"
	"weekplanner/internal/config"
	"weekplanner/internal/logger"
	"weekplanner/internal/planner"
	"weekplanner/internal/repository/task/sqlite"
	"weekplanner/internal/service"
	"weekplanner/internal/sysopen"
	"weekplanner/internal/ui"
)

// App wires the layers together and keeps the shutdown functions in the
// order they must run in reverse.
type App struct {
	config    *config.Config
	storage   *sqlite.Storage
	repl      *ui.REPL
	shutdowns []func()
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development, a.config.Logging.Path); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("App: shutting down logging")
		logger.Sync()
	})

	storage, err := sqlite.New(ctx, a.config.Database.Path)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	a.storage = storage
	a.shutdowns = append(a.shutdowns, func() {
		_ = storage.Close()
	})

	if err := storage.Migrate(); err != nil {
		return fmt.Errorf("migrate storage: %w", err)
	}

	files, err := attachments.New(a.config.Attachments.Dir)
	if err != nil {
		return fmt.Errorf("init attachment storage: %w", err)
	}

	svc := service.NewTaskService(storage, files)
	ctrl := planner.NewController(svc, sysopen.Open, time.Now())
	a.repl = ui.NewREPL(ctrl, os.Stdin, os.Stdout)

	logger.Info("App: initialized")
	return nil
}

// Run drives the interactive loop until the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	return a.repl.Run(ctx)
}

func (a *App) Shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}
