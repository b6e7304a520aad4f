package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	leetcli "github.com/leetcli/leetcli/internal"
	"github.com/leetcli/leetcli/internal/cache"
)

// statusAliases maps short status filters to the platform's display strings.
var statusAliases = map[string]string{
	"accepted": "Accepted",
	"ac":       "Accepted",
	"wrong":    "Wrong Answer",
	"wa":       "Wrong Answer",
	"tle":      "Time Limit Exceeded",
	"mle":      "Memory Limit Exceeded",
	"ce":       "Compile Error",
	"re":       "Runtime Error",
}

// filterSubmissions applies slug, status, and language filters.
func filterSubmissions(subs []leetcli.Submission, slug, status, lang string) []leetcli.Submission {
	wantStatus := ""
	if status != "" {
		wantStatus = statusAliases[strings.ToLower(status)]
		if wantStatus == "" {
			wantStatus = status
		}
	}
	wantLang := ""
	if lang != "" {
		wantLang = leetcli.LanguageSlug(lang)
	}

	var out []leetcli.Submission
	for _, s := range subs {
		if slug != "" && s.TitleSlug != slug {
			continue
		}
		if wantStatus != "" && s.StatusDisplay != wantStatus {
			continue
		}
		if wantLang != "" && s.Lang != wantLang {
			continue
		}
		out = append(out, s)
	}
	return out
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}

// historyCacheKey builds the stat key for one filtered history view. The
// account and the limit are part of the key: a session switch must not
// serve the previous account's feed, and a larger limit must not be served
// a result truncated by a smaller one.
func historyCacheKey(user, slug, status, lang string, limit int) string {
	return fmt.Sprintf("submissions_%s_%s_%s_%s_%d",
		user, orAll(slug), orAll(status), orAll(lang), limit)
}

var (
	historySlug   string
	historyStatus string
	historyLang   string
	historyLimit  int
)

const historyPageSize = 20

var submissionsCmd = &cobra.Command{
	Use:   "submissions",
	Short: "List your submission history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if !a.session.IsAuthenticated() {
			return leetcli.ErrNotAuthenticated
		}

		ctx := cmd.Context()
		user := a.session.Username()

		var subs []leetcli.Submission
		if historySlug != "" && historyStatus == "" && historyLang == "" {
			// Pure per-problem views go through the replace-set cache.
			subs, err = a.cache.Submissions(ctx, user, historySlug)
			if err != nil {
				return err
			}
			if len(subs) == 0 {
				subs, err = a.fetchHistory(ctx)
				if err != nil {
					return fmt.Errorf("fetch submissions: %w", err)
				}
				if err := a.cache.PutSubmissions(ctx, user, historySlug, subs); err != nil {
					return err
				}
			}
		} else {
			key := historyCacheKey(user, historySlug, historyStatus, historyLang, historyLimit)
			var ok bool
			subs, ok, err = cache.GetStat[[]leetcli.Submission](ctx, a.cache, key)
			if err != nil {
				return err
			}
			if !ok {
				subs, err = a.fetchHistory(ctx)
				if err != nil {
					return fmt.Errorf("fetch submissions: %w", err)
				}
				if err := cache.PutStat(ctx, a.cache, key, subs); err != nil {
					return err
				}
			}
		}

		if len(subs) > historyLimit {
			subs = subs[:historyLimit]
		}
		if jsonOutput {
			return printJSON(subs)
		}
		renderSubmissions(subs)
		return nil
	},
}

// fetchHistory pages through the submission feed until the filtered result
// reaches the requested limit or the feed ends.
func (a *app) fetchHistory(ctx context.Context) ([]leetcli.Submission, error) {
	var out []leetcli.Submission
	for offset := 0; len(out) < historyLimit; offset += historyPageSize {
		batch, err := a.client.FetchSubmissions(ctx, offset, historyPageSize)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		out = append(out, filterSubmissions(batch, historySlug, historyStatus, historyLang)...)
		if len(batch) < historyPageSize {
			break
		}
	}
	return out, nil
}

func init() {
	submissionsCmd.Flags().StringVar(&historySlug, "problem", "", "Filter by problem slug")
	submissionsCmd.Flags().StringVar(&historyStatus, "status", "", "Filter by status (accepted, wa, tle, ...)")
	submissionsCmd.Flags().StringVar(&historyLang, "lang", "", "Filter by language")
	submissionsCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of results")

	rootCmd.AddCommand(submissionsCmd)
}
