package desktop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"hiddengems/internal/config"
	"hiddengems/internal/logging"
	"hiddengems/internal/supervisor"
	"hiddengems/internal/window"
)

// Options configures a launcher run.
type Options struct {
	LogLevel    string
	Development bool
	Headless    bool
	// ConfigPath is reported in the startup banner.
	ConfigPath string
	// Backend overrides the window backend chosen from Headless.
	Backend window.Backend
	// Handlers receive every record in addition to the console and run log.
	Handlers []slog.Handler
	// Supervisor customizes backend supervision.
	Supervisor []supervisor.Option
}

// App is a started launcher: backend supervised, window open.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	sessionID  string
	logPath    string
	supervisor *supervisor.Supervisor
	registrar  *window.Registrar
	backend    supervisor.Result

	closeOnce sync.Once
	teardown  supervisor.TeardownResult
}

// Greet is exposed to the page as greet(name).
func Greet(name string) string {
	return fmt.Sprintf("Hello, %s!", name)
}

// Start runs the setup sequence: ensure the backend, settle, then create the
// main window. A window creation failure stops any backend this call launched.
func Start(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	runID := time.Now().UTC().Format("20060102T150405.000Z")
	logPath := filepath.Join(cfg.Paths.LogDir, fmt.Sprintf("hiddengems-%s.log", runID))
	sessionID := uuid.NewString()

	level := cfg.Logging.Level
	if strings.TrimSpace(opts.LogLevel) != "" {
		level = opts.LogLevel
	}
	logger, err := logging.New(logging.Options{
		Level:       level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stdout", logPath},
		Development: opts.Development,
		SessionID:   sessionID,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if len(opts.Handlers) > 0 {
		logger = logging.TeeLogger(logger, opts.Handlers...)
	}
	logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays,
		logging.RetentionTarget{Dir: cfg.Paths.LogDir, Pattern: "hiddengems-*.log", Exclude: []string{logPath}},
		logging.RetentionTarget{Dir: cfg.Paths.LogDir, Pattern: "backend.log.*"},
	)

	app := &App{
		cfg:        cfg,
		logger:     logger,
		sessionID:  sessionID,
		logPath:    logPath,
		supervisor: supervisor.New(supervisor.NewBackendConfig(cfg), logger, opts.Supervisor...),
		registrar:  window.NewRegistrar(selectBackend(cfg, opts, logger), logger),
	}

	// The readiness wait runs to completion even if the caller is interrupted.
	app.backend = app.supervisor.EnsureRunning(context.WithoutCancel(ctx))

	if delay := cfg.SettleDelay(); delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
		}
	}
	if err := ctx.Err(); err != nil {
		logger.Info("startup interrupted before the window opened")
		app.Close()
		return nil, fmt.Errorf("startup interrupted: %w", err)
	}

	name := cfg.Window.Name
	_, err = app.registrar.EnsureWindow(ctx, name, cfg.Window.URL, window.Properties{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Resizable: cfg.Window.Resizable,
	})
	if err != nil {
		logging.ErrorWithContext(logger, "window setup failed", "window_create_failed",
			logging.Window(name),
			logging.Error(err),
			logging.Hint("install Chrome or Chromium, or run with --headless"),
		)
		app.Close()
		return nil, err
	}
	if w, ok := app.registrar.Window(name); ok {
		if err := w.Bind("greet", Greet); err != nil {
			logging.WarnWithContext(logger, "greet binding unavailable", "window_bind_failed",
				logging.Window(name),
				logging.Error(err),
				logging.Impact("greet() is not callable from the page"),
			)
		}
	}

	app.banner(opts.ConfigPath)
	return app, nil
}

func selectBackend(cfg *config.Config, opts Options, logger *slog.Logger) window.Backend {
	switch {
	case opts.Backend != nil:
		return opts.Backend
	case opts.Headless:
		return window.NewHeadlessBackend()
	default:
		return &window.LorcaBackend{ProfileDir: cfg.Window.ProfileDir, Logger: logger}
	}
}

func (a *App) banner(configPath string) {
	configLabel := configPath
	if strings.TrimSpace(configLabel) == "" {
		configLabel = "(defaults)"
	}
	a.logger.Info(a.cfg.Window.Title+" is up",
		logging.Event("launcher_ready"),
		logging.String("url", a.cfg.Window.URL),
		logging.String("backend", a.backend.Message()),
		logging.String("base_dir", a.cfg.Backend.BaseDir),
		logging.String("config", configLabel),
		logging.String("run_log", a.logPath),
		logging.String("backend_log", a.cfg.BackendLogPath()),
	)
}

// Logger returns the run logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// SessionID identifies this run in every log record.
func (a *App) SessionID() string { return a.sessionID }

// LogPath is this run's log file.
func (a *App) LogPath() string { return a.logPath }

// Backend reports how backend supervision ended.
func (a *App) Backend() supervisor.Result { return a.backend }

// Registrar exposes the window registry.
func (a *App) Registrar() *window.Registrar { return a.registrar }

// Wait blocks until the main window closes or ctx is cancelled.
func (a *App) Wait(ctx context.Context) {
	w, ok := a.registrar.Window(a.cfg.Window.Name)
	if !ok {
		<-ctx.Done()
		return
	}
	select {
	case <-w.Done():
		a.logger.Info("window closed", logging.Window(a.cfg.Window.Name))
	case <-ctx.Done():
		a.logger.Info("shutdown requested")
	}
}

// Close closes windows and stops the backend if this run launched it. Only the
// first call acts; later calls return the same result.
func (a *App) Close() supervisor.TeardownResult {
	a.closeOnce.Do(func() {
		if err := a.registrar.CloseAll(); err != nil {
			logging.WarnWithContext(a.logger, "window close failed", "window_close_failed",
				logging.Error(err),
				logging.Impact("a browser window may stay open"),
			)
		}
		a.teardown = a.supervisor.Teardown()
	})
	return a.teardown
}

// Run starts the launcher and blocks until the window closes or SIGINT or
// SIGTERM arrives, then tears everything down.
func Run(ctx context.Context, cfg *config.Config, opts Options) error {
	signalCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app, err := Start(signalCtx, cfg, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Interrupted before the window opened; Start already cleaned up.
			return nil
		}
		if errors.Is(err, window.ErrWindowCreation) {
			return fmt.Errorf("open %s window: %w", cfg.Window.Name, err)
		}
		return err
	}
	defer app.Close()

	app.Wait(signalCtx)
	app.logger.Info("launcher shutting down")
	return nil
}
