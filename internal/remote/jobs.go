package remote

import (
	"context"
	"fmt"
	"strings"

	leetcli "github.com/leetcli/leetcli/internal"
)

// StartSubmit submits source for judging and returns the opaque job id.
func (c *Client) StartSubmit(ctx context.Context, meta *leetcli.ProblemMeta, source, lang string) (string, error) {
	res, err := c.postJSON(ctx, "submit", "/problems/"+meta.TitleSlug+"/submit/", map[string]any{
		"lang":        lang,
		"question_id": meta.QuestionID,
		"typed_code":  source,
	})
	if err != nil {
		return "", err
	}
	id := res.Get("submission_id")
	if !id.Exists() {
		return "", fmt.Errorf("submit %s: no submission id in response", meta.TitleSlug)
	}
	return id.String(), nil
}

// StartTest runs source against test input without submitting and returns
// the opaque job id. An empty testInput uses the problem's samples.
func (c *Client) StartTest(ctx context.Context, meta *leetcli.ProblemMeta, source, lang, testInput string) (string, error) {
	res, err := c.postJSON(ctx, "test", "/problems/"+meta.TitleSlug+"/interpret_solution/", map[string]any{
		"lang":        lang,
		"question_id": meta.QuestionID,
		"typed_code":  source,
		"data_input":  testInput,
		"judge_type":  "large",
	})
	if err != nil {
		return "", err
	}
	id := res.Get("interpret_id")
	if !id.Exists() {
		return "", fmt.Errorf("test %s: no interpret id in response", meta.TitleSlug)
	}
	return id.String(), nil
}

// CheckStatus polls one judge job, normalizing the platform's status
// vocabulary into the closed RemoteState set.
func (c *Client) CheckStatus(ctx context.Context, jobID string) (*leetcli.StatusCheck, error) {
	res, err := c.getJSON(ctx, "check", "/submissions/detail/"+jobID+"/check/")
	if err != nil {
		return nil, err
	}

	return &leetcli.StatusCheck{
		State:          normalizeState(res.Get("state").String()),
		StatusCode:     int(res.Get("status_code").Int()),
		StatusMsg:      res.Get("status_msg").String(),
		RunSuccess:     res.Get("run_success").Bool(),
		Runtime:        res.Get("status_runtime").String(),
		Memory:         res.Get("status_memory").String(),
		TotalCorrect:   int(res.Get("total_correct").Int()),
		TotalTestcases: int(res.Get("total_testcases").Int()),
		CodeOutput:     res.Get("code_output").String(),
		ExpectedOutput: res.Get("expected_output").String(),
		LastTestcase:   res.Get("last_testcase").String(),
	}, nil
}

// normalizeState maps the judge's raw state strings onto RemoteState.
// Anything unrecognized counts as pending so a new vocabulary entry delays
// a poll instead of failing it.
func normalizeState(raw string) leetcli.RemoteState {
	switch strings.ToUpper(raw) {
	case "SUCCESS":
		return leetcli.StateSucceeded
	case "FAILURE":
		return leetcli.StateFailed
	case "TIMEOUT":
		return leetcli.StateRemoteTimedOut
	default:
		return leetcli.StatePending
	}
}
