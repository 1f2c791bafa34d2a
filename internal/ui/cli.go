package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rota/internal/config"
	"github.com/javiermolinar/rota/internal/db"
	"github.com/javiermolinar/rota/internal/debuglog"
	"github.com/javiermolinar/rota/internal/shift"
	"github.com/javiermolinar/rota/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	store  shift.Store
	owned  bool // store was opened by the app
	config *config.Config
	path   string // config file edited by `rota config`
	root   *cobra.Command
	debug  bool // Enable debug logging
	log    *debuglog.Logger
	now    func() time.Time
}

// NewApp creates a new CLI application. A nil store is opened from the
// configured database path the first time a command needs it.
func NewApp(store shift.Store, cfg *config.Config) *App {
	a := &App{store: store, config: cfg, path: config.DefaultConfigPath(), now: time.Now}

	a.root = &cobra.Command{
		Use:   "rota",
		Short: "A terminal board for weekly staff shifts",
		Long: `Rota schedules staff shifts on a weekly grid.

Run it without arguments to open the board: drag an employee from the
roster onto a day to create a shift, drag a shift to move it, and drag
its last row to change when it ends. The subcommands perform the same
operations from scripts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := a.storage()
			if err != nil {
				return err
			}
			return tui.Run(store, a.config, a.logger())
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to temp file)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.employeeCmd())
	a.root.AddCommand(a.shiftCmd())
	a.root.AddCommand(a.weekCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rota %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the store, if the app opened it, and the debug log.
func (a *App) Close() error {
	var errs []error
	if a.owned && a.store != nil {
		errs = append(errs, a.store.Close())
		a.store = nil
	}
	if a.log != nil {
		errs = append(errs, a.log.Close())
	}
	return errors.Join(errs...)
}

// storage returns the store, opening the configured database on first use.
func (a *App) storage() (shift.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	s, err := db.New(a.config.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	a.store, a.owned = s, true
	return s, nil
}

// logger returns the debug logger, opening it in the temp dir with --debug.
func (a *App) logger() *debuglog.Logger {
	if a.log != nil {
		return a.log
	}
	a.log = debuglog.Disabled()
	if !a.debug {
		return a.log
	}

	path := filepath.Join(os.TempDir(), debuglog.DefaultPath)
	l, err := debuglog.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "debug logging disabled: %v\n", err)
		return a.log
	}
	fmt.Fprintf(os.Stderr, "Debug log: %s\n", path)
	a.log = l
	return a.log
}
