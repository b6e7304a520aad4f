package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leetcli/leetcli/internal/storage"
	"github.com/leetcli/leetcli/internal/worker"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the local cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show record counts per cache kind",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		stats, err := a.cache.Stats(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(stats)
		}
		for _, kind := range storage.Kinds() {
			fmt.Printf("%-12s %d\n", kind, stats[kind])
		}
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [kind]",
	Short: "Delete cached records, optionally for a single kind",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) == 1 {
			return a.cache.ClearKind(cmd.Context(), storage.Kind(args[0]))
		}
		return a.cache.Clear(cmd.Context())
	},
}

var cleanupEvery time.Duration

var cacheCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove expired records, once or on an interval",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if cleanupEvery > 0 {
			runner := worker.NewRunner(worker.NewSweepWorker(a.cache, cleanupEvery))
			return runner.Run(cmd.Context())
		}

		removed, err := a.cache.CleanupExpired(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("removed %d expired records\n", removed)
		return nil
	},
}

func init() {
	cacheCleanupCmd.Flags().DurationVar(&cleanupEvery, "every", 0,
		"Keep running, sweeping on this interval (0 sweeps once and exits)")

	cacheCmd.AddCommand(cacheStatsCmd, cacheClearCmd, cacheCleanupCmd)
	rootCmd.AddCommand(cacheCmd)
}
