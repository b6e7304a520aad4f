package remote

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	leetcli "github.com/leetcli/leetcli/internal"
)

const problemQuery = `
query questionDetail($titleSlug: String!) {
    question(titleSlug: $titleSlug) {
        questionId
        questionFrontendId
        title
        titleSlug
        difficulty
        isPaidOnly
        acRate
        content
        topicTags {
            name
            slug
        }
    }
}`

const dailyQuery = `
query questionOfToday {
    activeDailyCodingChallengeQuestion {
        date
        userStatus
        link
        question {
            questionId
            acRate
            difficulty
            frontendQuestionId: questionFrontendId
            paidOnly: isPaidOnly
            title
            titleSlug
            topicTags {
                name
                slug
            }
        }
    }
}`

// FetchProblem retrieves problem metadata by slug. A slug the platform does
// not know is reported as leetcli.ErrProblemNotFound.
func (c *Client) FetchProblem(ctx context.Context, slug string) (*leetcli.ProblemMeta, error) {
	res, err := c.graphql(ctx, "problem", problemQuery, map[string]any{"titleSlug": slug})
	if err != nil {
		return nil, err
	}

	q := res.Get("data.question")
	if !q.Exists() || q.Type == gjson.Null {
		return nil, fmt.Errorf("%q: %w", slug, leetcli.ErrProblemNotFound)
	}
	meta := problemFromJSON(q, "questionFrontendId")
	return &meta, nil
}

// FetchDailyChallenge retrieves the question of the day.
func (c *Client) FetchDailyChallenge(ctx context.Context) (*leetcli.DailyChallenge, error) {
	res, err := c.graphql(ctx, "daily", dailyQuery, nil)
	if err != nil {
		return nil, err
	}

	d := res.Get("data.activeDailyCodingChallengeQuestion")
	if !d.Exists() || d.Type == gjson.Null {
		return nil, fmt.Errorf("daily challenge: %w", leetcli.ErrNotFound)
	}
	return &leetcli.DailyChallenge{
		Date:       d.Get("date").String(),
		Link:       d.Get("link").String(),
		UserStatus: d.Get("userStatus").String(),
		Problem:    problemFromJSON(d.Get("question"), "frontendQuestionId"),
	}, nil
}

// problemFromJSON decodes a question object. frontendIDField differs
// between the problem and daily-challenge queries.
func problemFromJSON(q gjson.Result, frontendIDField string) leetcli.ProblemMeta {
	var tags []string
	for _, tag := range q.Get("topicTags.#.name").Array() {
		tags = append(tags, tag.String())
	}
	paidOnly := q.Get("isPaidOnly")
	if !paidOnly.Exists() {
		paidOnly = q.Get("paidOnly")
	}
	return leetcli.ProblemMeta{
		ID:             q.Get(frontendIDField).String(),
		QuestionID:     q.Get("questionId").String(),
		Title:          q.Get("title").String(),
		TitleSlug:      q.Get("titleSlug").String(),
		Difficulty:     q.Get("difficulty").String(),
		AcceptanceRate: q.Get("acRate").Float(),
		PaidOnly:       paidOnly.Bool(),
		Tags:           tags,
		Content:        q.Get("content").String(),
	}
}
