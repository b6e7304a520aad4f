package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	leetcli "github.com/leetcli/leetcli/internal"
	"github.com/leetcli/leetcli/internal/cache"
)

const catalogStatKey = "problems_all"

// searchProblems filters the catalog by a keyword (matched against title,
// slug, and tags), an optional difficulty, and a result cap.
func searchProblems(all []leetcli.ProblemMeta, query, difficulty string, limit int) []leetcli.ProblemMeta {
	q := strings.ToLower(query)
	var out []leetcli.ProblemMeta
	for _, p := range all {
		if !matchesQuery(&p, q) {
			continue
		}
		if difficulty != "" && !strings.EqualFold(p.Difficulty, difficulty) {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

func matchesQuery(p *leetcli.ProblemMeta, q string) bool {
	if strings.Contains(strings.ToLower(p.Title), q) {
		return true
	}
	if strings.Contains(p.TitleSlug, q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

var (
	searchDifficulty string
	searchLimit      int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search problems by keyword",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		all, ok, err := cache.GetStat[[]leetcli.ProblemMeta](ctx, a.cache, catalogStatKey)
		if err != nil {
			return err
		}
		if !ok {
			all, err = a.client.FetchAllProblems(ctx)
			if err != nil {
				return fmt.Errorf("fetch problem catalog: %w", err)
			}
			if err := cache.PutStat(ctx, a.cache, catalogStatKey, all); err != nil {
				return err
			}
		}

		matches := searchProblems(all, args[0], searchDifficulty, searchLimit)
		if jsonOutput {
			return printJSON(matches)
		}
		renderSearchResults(matches, args[0])
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchDifficulty, "difficulty", "", "Filter by difficulty (Easy, Medium, Hard)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum number of results")

	rootCmd.AddCommand(searchCmd)
}
