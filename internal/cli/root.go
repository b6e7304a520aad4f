// Package cli implements the command-line interface for leetcli.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leetcli/leetcli/internal/auth"
	"github.com/leetcli/leetcli/internal/cache"
	"github.com/leetcli/leetcli/internal/config"
	"github.com/leetcli/leetcli/internal/judge"
	"github.com/leetcli/leetcli/internal/remote"
	"github.com/leetcli/leetcli/internal/storage/sqlite"
)

// Global flags
var (
	jsonOutput bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "leetcli",
	Short:         "leetcli – practice problems from your terminal",
	Long:          `A terminal client for a coding-practice platform: browse problems, check profiles, submit solutions, and run tests, with a local cache for fast repeat lookups.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// errNotAccepted marks an already-rendered non-accepted verdict. Commands
// return it instead of exiting so their deferred cleanup runs; Execute maps
// it to exit status 1 without printing a duplicate error line.
var errNotAccepted = errors.New("solution not accepted")

// Execute runs the root command with the given context.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errNotAccepted) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Emit raw JSON instead of formatted text")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose debug output to stderr")
}

// app bundles the wired services behind every command.
type app struct {
	cfg     *config.Config
	store   *sqlite.Store
	cache   *cache.Cache
	session *auth.Session
	client  *remote.Client
	judge   *judge.Service
}

// newApp loads config and session, opens the cache database, and wires the
// remote client and judge service.
func newApp() (*app, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		return nil, err
	}

	dbPath := cfg.Cache.Path
	if dbPath == "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create config dir: %w", err)
		}
		dbPath = filepath.Join(dir, "cache.db")
	}
	store, err := sqlite.New(dbPath)
	if err != nil {
		return nil, err
	}

	c, err := cache.New(store, cfg.Cache.TTL, cfg.Cache.FrontMaxSize)
	if err != nil {
		store.Close()
		return nil, err
	}

	session, err := auth.Load(dir)
	if err != nil {
		store.Close()
		return nil, err
	}

	client := remote.New(cfg.API.BaseURL, cfg.API.Timeout, session)
	svc := judge.NewService(session, c, client, client,
		judge.WithInterval(cfg.Judge.PollInterval),
		judge.WithTimeout(cfg.Judge.PollTimeout),
	)

	return &app{
		cfg:     cfg,
		store:   store,
		cache:   c,
		session: session,
		client:  client,
		judge:   svc,
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}
