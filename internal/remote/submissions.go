package remote

import (
	"context"
	"fmt"

	leetcli "github.com/leetcli/leetcli/internal"
)

// FetchSubmissions retrieves one page of the authenticated user's
// submission history.
func (c *Client) FetchSubmissions(ctx context.Context, offset, limit int) ([]leetcli.Submission, error) {
	path := fmt.Sprintf("/api/submissions/?offset=%d&limit=%d", offset, limit)
	res, err := c.getJSON(ctx, "submissions", path)
	if err != nil {
		return nil, err
	}

	var out []leetcli.Submission
	for _, s := range res.Get("submissions_dump").Array() {
		out = append(out, leetcli.Submission{
			ID:            s.Get("id").String(),
			Title:         s.Get("title").String(),
			TitleSlug:     s.Get("title_slug").String(),
			Lang:          s.Get("lang").String(),
			StatusDisplay: s.Get("status_display").String(),
			Runtime:       s.Get("runtime").String(),
			Memory:        s.Get("memory").String(),
			Timestamp:     s.Get("timestamp").Int(),
		})
	}
	return out, nil
}
