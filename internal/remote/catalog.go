package remote

import (
	"context"

	leetcli "github.com/leetcli/leetcli/internal"
)

// difficultyNames maps the catalog endpoint's numeric levels.
var difficultyNames = map[int64]string{
	1: "Easy",
	2: "Medium",
	3: "Hard",
}

// FetchAllProblems retrieves the full problem catalog. The endpoint returns
// summary rows only: no tags or content, and acceptance must be derived
// from raw counters.
func (c *Client) FetchAllProblems(ctx context.Context) ([]leetcli.ProblemMeta, error) {
	res, err := c.getJSON(ctx, "catalog", "/api/problems/all/")
	if err != nil {
		return nil, err
	}

	var out []leetcli.ProblemMeta
	for _, p := range res.Get("stat_status_pairs").Array() {
		stat := p.Get("stat")
		difficulty := difficultyNames[p.Get("difficulty.level").Int()]
		if difficulty == "" {
			difficulty = "Unknown"
		}

		var acceptance float64
		if submitted := stat.Get("total_submitted").Float(); submitted > 0 {
			acceptance = stat.Get("total_acs").Float() / submitted * 100
		}

		out = append(out, leetcli.ProblemMeta{
			ID:             stat.Get("frontend_question_id").String(),
			QuestionID:     stat.Get("question_id").String(),
			Title:          stat.Get("question__title").String(),
			TitleSlug:      stat.Get("question__title_slug").String(),
			Difficulty:     difficulty,
			AcceptanceRate: acceptance,
			PaidOnly:       p.Get("paid_only").Bool(),
		})
	}
	return out, nil
}
