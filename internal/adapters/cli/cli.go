// Package cli implements the quotes terminal client.
//
// Every invocation loads the collection from the SQLite database, runs one
// widget operation against it and renders the result to the terminal. The
// last shown quote is kept in the same database under a per-session prefix,
// so one shell session sees its own last quote across invocations.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quotebox/internal/adapters/storage"
	"github.com/jsamuelsen/quotebox/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen/quotebox/internal/adapters/view"
	"github.com/jsamuelsen/quotebox/internal/app"
	"github.com/jsamuelsen/quotebox/internal/domain"
	"github.com/jsamuelsen/quotebox/internal/platform/config"
	"github.com/jsamuelsen/quotebox/internal/platform/logging"
	"github.com/jsamuelsen/quotebox/internal/ports"
)

// Options are the persistent flags shared by every subcommand.
type Options struct {
	ConfigDir string
	Profile   string
	Database  string
	Session   string
	NoColor   bool
	Verbose   bool
}

// env is the state a subcommand runs against. It is built by the root
// command's PersistentPreRunE and released by Execute.
type env struct {
	opts Options

	widget  *app.Widget
	session ports.KeyValueStore
	store   *sqlite.Store
	logger  *slog.Logger
}

// NewRootCmd builds the quotes command tree.
func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd()

	return cmd
}

func newRootCmd() (*cobra.Command, *env) {
	e := &env{}

	cmd := &cobra.Command{
		Use:   "quotes",
		Short: "Random quote widget for the terminal",
		Long: `quotes shows random quotes from a local collection.

The collection is stored in a SQLite database and survives restarts.
New quotes can be added one at a time or imported from a JSON file.

Examples:
  # Show a random quote
  quotes random

  # Show a random quote from one category
  quotes random --category Motivation

  # Add a quote
  quotes add "Stay hungry, stay foolish." Inspiration
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.open(cmd)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Join(ErrUsage, err)
	})

	flags := cmd.PersistentFlags()
	flags.StringVar(&e.opts.ConfigDir, "config-dir", "configs", "Directory holding base.yaml and profile files")
	flags.StringVar(&e.opts.Profile, "profile", envOr("APP_ENVIRONMENT", "local"), "Config profile to load")
	flags.StringVar(&e.opts.Database, "db", "", "SQLite database path (overrides storage.durable.path)")
	flags.StringVar(&e.opts.Session, "session", "", "Session name for the last shown quote (defaults to the parent process id)")
	flags.BoolVar(&e.opts.NoColor, "no-color", false, "Disable colored output")
	flags.BoolVarP(&e.opts.Verbose, "verbose", "v", false, "Log at the configured level instead of errors only")

	cmd.AddCommand(
		randomCmd(e),
		lastCmd(e),
		addCmd(e),
		categoriesCmd(e),
		exportCmd(e),
		importCmd(e),
	)

	return cmd, e
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root, e := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)

	e.close()

	if err != nil && !domain.IsValidation(err) && !domain.IsInvalidFormat(err) && !domain.IsParseFailure(err) {
		// Widget rejections were already rendered as notifications.
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
	}

	return ExitCode(err)
}

// open loads configuration, opens the database and builds the widget.
func (e *env) open(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := config.LoadFrom(e.opts.ConfigDir, e.opts.Profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	level := "error"
	if e.opts.Verbose {
		level = cfg.Log.Level
	}

	e.logger = logging.NewWithWriter(&logging.Config{
		Level:   level,
		Format:  "pretty",
		Service: cfg.App.Name,
		Version: cfg.App.Version,
	}, cmd.ErrOrStderr())

	path := cfg.Storage.Durable.Path
	if e.opts.Database != "" {
		path = e.opts.Database
	}

	store, err := sqlite.Open(ctx, sqlite.Config{Path: path, Logger: e.logger})
	if err != nil {
		return fmt.Errorf("opening quote database: %w", err)
	}

	e.store = store

	sessionID := e.opts.Session
	if sessionID == "" {
		sessionID = strconv.Itoa(os.Getppid())
	}

	e.session = storage.ForSession(store, sessionID)
	cmd.SetContext(logging.WithSession(logging.WithContext(ctx, e.logger), sessionID))

	var seed domain.Collection
	if !cfg.Widget.SeedDefaults {
		seed = domain.Collection{}
	}

	e.widget = app.NewWidget(ctx, app.WidgetConfig{
		Bridge: app.NewStorageBridge(app.StorageBridgeConfig{
			Durable: store,
			Seed:    seed,
			Logger:  e.logger,
		}),
		Logger: e.logger,
	})

	return nil
}

func (e *env) close() {
	if e.store == nil {
		return
	}

	if err := e.store.Close(); err != nil {
		e.logger.Error("closing quote database", slog.Any("error", err))
	}

	e.store = nil
}

// terminal returns a surface writing to the command's output streams.
func (e *env) terminal(cmd *cobra.Command, opts ...view.TerminalOption) *view.Terminal {
	if e.opts.NoColor {
		opts = append(opts, view.WithoutColor())
	}

	return view.NewTerminal(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts...)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
