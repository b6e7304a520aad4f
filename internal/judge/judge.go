package judge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	leetcli "github.com/leetcli/leetcli/internal"
	"github.com/leetcli/leetcli/internal/cache"
	"github.com/leetcli/leetcli/internal/storage"
)

// Service implements submit and run-tests as single synchronous calls. It
// resolves problem metadata through the cache, starts the remote job, and
// hands the job id to the poller.
//
// Job starts are at-most-once: a start that fails is surfaced to the caller
// and never retried automatically.
type Service struct {
	auth    leetcli.AuthProvider
	cache   *cache.Cache
	fetcher leetcli.ProblemFetcher
	jobs    leetcli.JobClient
	poller  *Poller
	now     func() time.Time
}

// NewService wires the orchestrator from its collaborators. pollOpts are
// forwarded to the internal Poller.
func NewService(auth leetcli.AuthProvider, c *cache.Cache, fetcher leetcli.ProblemFetcher, jobs leetcli.JobClient, pollOpts ...PollerOption) *Service {
	return &Service{
		auth:    auth,
		cache:   c,
		fetcher: fetcher,
		jobs:    jobs,
		poller:  NewPoller(jobs, pollOpts...),
		now:     time.Now,
	}
}

// Submit submits source for the given problem and blocks until the judge
// reaches a verdict, the poll times out, or ctx is cancelled.
func (s *Service) Submit(ctx context.Context, slug, source, language string) (*leetcli.JobResult, error) {
	return s.run(ctx, leetcli.JobSubmit, slug, source, language, "")
}

// RunTests executes source against the problem's tests without submitting.
// An empty testInput uses the problem's default test cases.
func (s *Service) RunTests(ctx context.Context, slug, source, language, testInput string) (*leetcli.JobResult, error) {
	return s.run(ctx, leetcli.JobTest, slug, source, language, testInput)
}

func (s *Service) run(ctx context.Context, kind leetcli.JobKind, slug, source, language, testInput string) (*leetcli.JobResult, error) {
	if !s.auth.IsAuthenticated() {
		return nil, leetcli.ErrNotAuthenticated
	}

	meta, err := s.ResolveProblem(ctx, slug)
	if err != nil {
		return nil, err
	}

	lang := leetcli.LanguageSlug(language)

	var jobID string
	if kind == leetcli.JobSubmit {
		jobID, err = s.jobs.StartSubmit(ctx, meta, source, lang)
	} else {
		jobID, err = s.jobs.StartTest(ctx, meta, source, lang, testInput)
	}
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", kind, err)
	}

	job := leetcli.Job{ID: jobID, Kind: kind, StartedAt: s.now()}
	slog.Info("judge job started", "kind", kind, "job_id", jobID, "slug", slug, "lang", lang)

	return s.poller.Poll(ctx, job)
}

// ResolveProblem returns problem metadata for slug, reading through the
// cache: a fresh cached record answers without any network call.
func (s *Service) ResolveProblem(ctx context.Context, slug string) (*leetcli.ProblemMeta, error) {
	meta, err := cache.ReadThrough(ctx, s.cache, storage.KindProblem, slug,
		func(ctx context.Context) (*leetcli.ProblemMeta, error) {
			return s.fetcher.FetchProblem(ctx, slug)
		})
	if errors.Is(err, leetcli.ErrNotFound) || errors.Is(err, leetcli.ErrProblemNotFound) {
		return nil, fmt.Errorf("%q: %w", slug, leetcli.ErrProblemNotFound)
	}
	if err != nil {
		return nil, err
	}
	return meta, nil
}
