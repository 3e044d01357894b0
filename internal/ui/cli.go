// Package ui implements the aula command line.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/aula/internal/config"
	"github.com/javiermolinar/aula/internal/db"
	"github.com/javiermolinar/aula/internal/logging"
	"github.com/javiermolinar/aula/internal/schedule"
	"github.com/javiermolinar/aula/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config  *config.Config
	logger  *zap.Logger
	svc     *schedule.Service
	repo    *db.SQLite
	root    *cobra.Command
	debug   bool // Enable debug logging
	noColor bool
}

// Option configures an App.
type Option func(*App)

// WithService uses svc instead of opening the configured database.
func WithService(svc *schedule.Service) Option {
	return func(a *App) {
		a.svc = svc
	}
}

// NewApp creates a new CLI application with the given config and logger.
func NewApp(cfg *config.Config, logger *zap.Logger, opts ...Option) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{config: cfg, logger: logger}
	for _, opt := range opts {
		opt(a)
	}

	a.root = &cobra.Command{
		Use:   "aula",
		Short: "A weekly university timetable manager",
		Long: `Aula manages a weekly class timetable: courses, teachers, classrooms
and student groups placed on a fixed grid of start times.

Every edit is checked for teacher, classroom and student group clashes.
Run without arguments to open the interactive timetable.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd.Context())
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (TUI logs to temp file)")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.slotCmd())
	a.root.AddCommand(a.gridCmd())
	a.root.AddCommand(a.conflictsCmd())
	a.root.AddCommand(a.freeCmd())
	a.root.AddCommand(a.viewCmd())
	a.root.AddCommand(a.statsCmd())
	a.root.AddCommand(a.summaryCmd())
	a.root.AddCommand(a.generateCmd())
	a.root.AddCommand(a.seedCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.serveCmd())
	for _, cmd := range a.registryCmds() {
		a.root.AddCommand(cmd)
	}

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "aula %s (commit: %s)\n", Version, Commit)
		},
	}
}

// runTUI opens the interactive timetable. Logs go to a temp file with --debug
// and are discarded otherwise so they do not corrupt the screen.
func (a *App) runTUI(_ context.Context) error {
	logger := zap.NewNop()
	if a.debug {
		path := filepath.Join(os.TempDir(), "aula-debug.log")
		fileLogger, err := logging.NewFile("debug", path)
		if err != nil {
			return err
		}
		defer func() { _ = fileLogger.Sync() }()
		logger = fileLogger
		fmt.Fprintf(os.Stderr, "Debug log: %s\n", path)
	}
	if a.svc == nil {
		a.logger = logger
	}

	svc, err := a.ensureService()
	if err != nil {
		return err
	}
	return tui.Run(svc, svc.WorkingDays(),
		tui.WithTheme(a.config.UI.Theme),
		tui.WithLogger(logger),
	)
}

// ensureService opens the database and builds the schedule service on first use.
func (a *App) ensureService() (*schedule.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}

	path, err := resolvePath(a.config.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("database path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	repo, err := db.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo

	a.svc = schedule.New(repo,
		schedule.WithGenerator(newGenerator(a.config, a.logger)),
		schedule.WithWorkingDays(a.config.WorkingDays()),
		schedule.WithLogger(a.logger),
	)
	a.logger.Debug("database opened", zap.String("path", path))
	return a.svc, nil
}

// Close releases the database if one was opened.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// ExecuteContext runs the CLI application with ctx.
func (a *App) ExecuteContext(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}

// SetArgs overrides the command line arguments. Used by tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// SetOutput redirects command output. Used by tests.
func (a *App) SetOutput(out io.Writer) {
	a.root.SetOut(out)
	a.root.SetErr(out)
}
