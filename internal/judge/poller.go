// Package judge drives remote judge jobs: it starts submissions and test
// runs, polls for their completion, and normalizes the outcome.
package judge

import (
	"context"
	"log/slog"
	"time"

	leetcli "github.com/leetcli/leetcli/internal"
)

const (
	// DefaultPollInterval is the fixed sleep between status checks.
	// Judge jobs typically finish within a few seconds, so a constant
	// short interval beats backoff on latency.
	DefaultPollInterval = time.Second
	// DefaultPollTimeout bounds how long one job is polled before the
	// client gives up locally.
	DefaultPollTimeout = 30 * time.Second
)

// StatusChecker is the single capability the poller consumes. It knows
// nothing about HTTP or the platform's wire format.
type StatusChecker interface {
	CheckStatus(ctx context.Context, jobID string) (*leetcli.StatusCheck, error)
}

// Poller repeatedly checks a job's status until it reaches a terminal state
// or the local timeout expires.
type Poller struct {
	checker  StatusChecker
	interval time.Duration
	timeout  time.Duration
	now      func() time.Time
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithInterval overrides the tick interval.
func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) { p.interval = d }
}

// WithTimeout overrides the local poll timeout.
func WithTimeout(d time.Duration) PollerOption {
	return func(p *Poller) { p.timeout = d }
}

// NewPoller creates a Poller over checker with the default interval and timeout.
func NewPoller(checker StatusChecker, opts ...PollerOption) *Poller {
	p := &Poller{
		checker:  checker,
		interval: DefaultPollInterval,
		timeout:  DefaultPollTimeout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Poll blocks until the job reaches a terminal state, the local timeout
// expires, or ctx is cancelled. Transport failures on individual checks are
// logged and retried on the next tick; they never decide the outcome.
// Unrecognized remote statuses leave the job pending.
func (p *Poller) Poll(ctx context.Context, job leetcli.Job) (*leetcli.JobResult, error) {
	start := p.now()

	for {
		if p.now().Sub(start) >= p.timeout {
			return &leetcli.JobResult{
				State:   leetcli.ResultLocalTimedOut,
				JobID:   job.ID,
				Kind:    job.Kind,
				Reason:  "gave up waiting for the judge",
				Elapsed: p.now().Sub(start),
			}, nil
		}

		check, err := p.checker.CheckStatus(ctx, job.ID)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.Debug("status check failed, retrying",
				"job_id", job.ID, "kind", job.Kind, "error", err)
		case check.State == leetcli.StateSucceeded:
			return resultFromCheck(job, check, p.now().Sub(start)), nil
		case check.State == leetcli.StateFailed:
			return &leetcli.JobResult{
				State:   leetcli.ResultRejected,
				JobID:   job.ID,
				Kind:    job.Kind,
				Reason:  check.StatusMsg,
				Elapsed: p.now().Sub(start),
			}, nil
		case check.State == leetcli.StateRemoteTimedOut:
			return &leetcli.JobResult{
				State:   leetcli.ResultRemoteTimedOut,
				JobID:   job.ID,
				Kind:    job.Kind,
				Reason:  check.StatusMsg,
				Elapsed: p.now().Sub(start),
			}, nil
		}

		if err := sleep(ctx, p.interval); err != nil {
			return nil, err
		}
	}
}

// resultFromCheck normalizes a successful check into a JobResult. The judge
// reports SUCCESS for any finished run; the verdict lives in the status code
// (10 = accepted).
func resultFromCheck(job leetcli.Job, check *leetcli.StatusCheck, elapsed time.Duration) *leetcli.JobResult {
	accepted := check.StatusCode == 10 || check.StatusMsg == "Accepted"
	if job.Kind == leetcli.JobTest {
		accepted = accepted || check.RunSuccess
	}

	r := &leetcli.JobResult{
		State:          leetcli.ResultAccepted,
		JobID:          job.ID,
		Kind:           job.Kind,
		Runtime:        check.Runtime,
		Memory:         check.Memory,
		TotalCorrect:   check.TotalCorrect,
		TotalTestcases: check.TotalTestcases,
		CodeOutput:     check.CodeOutput,
		ExpectedOutput: check.ExpectedOutput,
		LastTestcase:   check.LastTestcase,
		Elapsed:        elapsed,
	}
	if !accepted {
		r.State = leetcli.ResultRejected
		r.Reason = check.StatusMsg
	}
	return r
}

// sleep waits for d or until ctx is cancelled, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
