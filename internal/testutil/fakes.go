// Package testutil provides in-memory fakes for the CLI's collaborator
// interfaces.
package testutil

import (
	"context"
	"sync"

	leetcli "github.com/leetcli/leetcli/internal"
)

// FakeAuth is an AuthProvider with a fixed answer.
type FakeAuth struct {
	Authenticated bool
}

// IsAuthenticated returns the configured answer.
func (a *FakeAuth) IsAuthenticated() bool { return a.Authenticated }

// FakeFetcher is a ProblemFetcher serving from a fixed map and counting calls.
type FakeFetcher struct {
	mu       sync.Mutex
	Problems map[string]*leetcli.ProblemMeta
	Err      error // returned for every call when set
	calls    int
}

// FetchProblem returns the stored problem or leetcli.ErrProblemNotFound.
func (f *FakeFetcher) FetchProblem(_ context.Context, slug string) (*leetcli.ProblemMeta, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	if p, ok := f.Problems[slug]; ok {
		return p, nil
	}
	return nil, leetcli.ErrProblemNotFound
}

// Calls returns how many fetches were attempted.
func (f *FakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// CheckStep scripts one CheckStatus response.
type CheckStep struct {
	Check *leetcli.StatusCheck
	Err   error
}

// FakeJobClient is a JobClient returning a fixed job id and a scripted
// sequence of status checks. The last step repeats once the script runs out.
type FakeJobClient struct {
	mu       sync.Mutex
	JobID    string
	StartErr error
	Steps    []CheckStep
	starts   int
	checks   int
}

// StartSubmit returns the configured job id.
func (c *FakeJobClient) StartSubmit(context.Context, *leetcli.ProblemMeta, string, string) (string, error) {
	return c.start()
}

// StartTest returns the configured job id.
func (c *FakeJobClient) StartTest(context.Context, *leetcli.ProblemMeta, string, string, string) (string, error) {
	return c.start()
}

func (c *FakeJobClient) start() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.starts++
	if c.StartErr != nil {
		return "", c.StartErr
	}
	if c.JobID == "" {
		return "job-1", nil
	}
	return c.JobID, nil
}

// CheckStatus plays the next scripted step.
func (c *FakeJobClient) CheckStatus(context.Context, string) (*leetcli.StatusCheck, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.checks
	c.checks++
	if i >= len(c.Steps) {
		i = len(c.Steps) - 1
	}
	if i < 0 {
		return &leetcli.StatusCheck{State: leetcli.StatePending}, nil
	}
	step := c.Steps[i]
	return step.Check, step.Err
}

// Starts returns how many jobs were started.
func (c *FakeJobClient) Starts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.starts
}

// Checks returns how many status checks were made.
func (c *FakeJobClient) Checks() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checks
}
