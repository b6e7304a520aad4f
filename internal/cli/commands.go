package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	leetcli "github.com/leetcli/leetcli/internal"
	"github.com/leetcli/leetcli/internal/cache"
	"github.com/leetcli/leetcli/internal/storage"
)

var profileCmd = &cobra.Command{
	Use:   "profile <username>",
	Short: "Show a user's profile and solve stats",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		username := args[0]
		p, err := cache.ReadThrough(cmd.Context(), a.cache, storage.KindProfile, username,
			func(ctx context.Context) (*leetcli.Profile, error) {
				return a.client.FetchProfile(ctx, username)
			})
		if err != nil {
			return fmt.Errorf("fetch profile: %w", err)
		}
		if jsonOutput {
			return printJSON(p)
		}
		renderProfile(p)
		return nil
	},
}

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Show today's daily challenge",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		date := time.Now().UTC().Format("2006-01-02")
		d, err := cache.ReadThrough(cmd.Context(), a.cache, storage.KindDaily, date,
			func(ctx context.Context) (*leetcli.DailyChallenge, error) {
				return a.client.FetchDailyChallenge(ctx)
			})
		if err != nil {
			return fmt.Errorf("fetch daily challenge: %w", err)
		}
		if jsonOutput {
			return printJSON(d)
		}
		renderDaily(d)
		return nil
	},
}

var problemCmd = &cobra.Command{
	Use:   "problem <slug>",
	Short: "Show a problem's metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		meta, err := a.judge.ResolveProblem(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(meta)
		}
		renderProblem(meta)
		return nil
	},
}

var submitLang string

var submitCmd = &cobra.Command{
	Use:   "submit <slug> <file>",
	Short: "Submit a solution file for judging",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		source, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read solution file: %w", err)
		}

		res, err := a.judge.Submit(cmd.Context(), args[0], string(source), submitLang)
		if err != nil {
			return err
		}
		if jsonOutput {
			if err := printJSON(res); err != nil {
				return err
			}
		} else {
			renderResult(res)
		}
		return verdictErr(res)
	},
}

var testInput string

var testCmd = &cobra.Command{
	Use:   "test <slug> <file>",
	Short: "Run a solution against the problem's tests without submitting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		source, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read solution file: %w", err)
		}

		res, err := a.judge.RunTests(cmd.Context(), args[0], string(source), submitLang, testInput)
		if err != nil {
			return err
		}
		if jsonOutput {
			if err := printJSON(res); err != nil {
				return err
			}
		} else {
			renderResult(res)
		}
		return verdictErr(res)
	},
}

// verdictErr maps a rendered judge result to the command outcome.
func verdictErr(r *leetcli.JobResult) error {
	if r.Accepted() {
		return nil
	}
	return errNotAccepted
}

func init() {
	submitCmd.Flags().StringVarP(&submitLang, "lang", "l", "", "Solution language (required)")
	submitCmd.MarkFlagRequired("lang") //nolint:errcheck
	testCmd.Flags().StringVarP(&submitLang, "lang", "l", "", "Solution language (required)")
	testCmd.MarkFlagRequired("lang") //nolint:errcheck
	testCmd.Flags().StringVar(&testInput, "input", "", "Custom test input (defaults to the problem's samples)")

	rootCmd.AddCommand(profileCmd, dailyCmd, problemCmd, submitCmd, testCmd)
}
