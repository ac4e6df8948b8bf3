package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/navmarks/internal/logger"
	"github.com/nikbrunner/navmarks/internal/session"
	"github.com/nikbrunner/navmarks/internal/storage"
)

// errNotFound is returned by commands given an unknown bookmark id.
var errNotFound = errors.New("bookmark not found")

// app is the state shared by all commands. It is filled in by setup just
// before a command runs.
type app struct {
	cfg     *storage.Config
	log     logger.Logger
	slot    storage.Slot
	session *session.Session

	// openURL opens a URL in the user's browser.
	openURL func(string) error
}

type rootOptions struct {
	configPath string
	backend    string
	logLevel   string
}

var (
	rootLong = strings.TrimSpace(dedent.Dedent(`
		bm keeps a flat list of bookmarks, each with a title, URL, description,
		categories and an icon. Run it without arguments for the interactive
		browser, or use the subcommands to script it.

		Bookmarks live in a single slot: a JSON file by default, or a SQLite
		database or Redis key depending on the configured backend.
	`))

	rootExample = dedent.Dedent(`
		# Browse bookmarks
		bm

		# Add a bookmark, filling the title and description from the page
		bm add https://go.dev --category dev --category docs

		# Fuzzy-find and open
		bm search github

		# Export for a feed reader
		bm export --format opml -`,
	)
)

func newRootCmd(a *app) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "bm",
		Short:         "A small bookmark manager for the terminal",
		Long:          rootLong,
		Example:       rootExample,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context(), opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, a)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", storage.DefaultConfigFilePath(), "Path to config file")
	flags.StringVar(&opts.backend, "backend", "", "Storage backend: file, sqlite, redis or memory (overrides config)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides config)")

	root.AddCommand(
		newListCmd(a),
		newSearchCmd(a),
		newAddCmd(a),
		newEditCmd(a),
		newRemoveCmd(a),
		newCategoriesCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newCullCmd(a),
	)

	return root
}

// setup loads config, builds the logger, opens the slot and loads the list.
func (a *app) setup(ctx context.Context, opts *rootOptions) error {
	cfg, err := storage.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.backend != "" {
		cfg.Backend = opts.backend
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	log, err := logger.New(cfg.LogLevel, cfg.PrettyLog)
	if err != nil {
		return err
	}

	slot, err := storage.OpenSlot(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.Backend, err)
	}

	a.cfg = cfg
	a.log = log.With(logger.String("backend", cfg.Backend))
	a.slot = slot
	a.session = session.New(storage.NewStorage(slot, a.log), a.log)
	a.session.Init(ctx)
	return nil
}

// close releases the slot and flushes the logger.
func (a *app) close() {
	if a.slot != nil {
		if err := a.slot.Close(); err != nil {
			a.log.Warn("closing storage failed", logger.Error(err))
		}
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}
