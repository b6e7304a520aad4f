package judge

import (
	"context"
	"errors"
	"testing"
	"time"

	leetcli "github.com/leetcli/leetcli/internal"
	"github.com/leetcli/leetcli/internal/cache"
	"github.com/leetcli/leetcli/internal/storage/sqlite"
	"github.com/leetcli/leetcli/internal/testutil"
)

func newTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	store, err := sqlite.New(t.TempDir() + "/cache.db")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	c, err := cache.New(store, time.Hour, 0)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func acceptedStep() testutil.CheckStep {
	return testutil.CheckStep{Check: &leetcli.StatusCheck{
		State:      leetcli.StateSucceeded,
		StatusCode: 10,
		StatusMsg:  "Accepted",
	}}
}

func twoSum() *leetcli.ProblemMeta {
	return &leetcli.ProblemMeta{ID: "1", Title: "Two Sum", TitleSlug: "two-sum", Difficulty: "Easy"}
}

func TestSubmitRequiresAuthBeforeAnyNetworkCall(t *testing.T) {
	t.Parallel()
	fetcher := &testutil.FakeFetcher{Problems: map[string]*leetcli.ProblemMeta{"two-sum": twoSum()}}
	jobs := &testutil.FakeJobClient{Steps: []testutil.CheckStep{acceptedStep()}}
	svc := NewService(&testutil.FakeAuth{Authenticated: false}, newTestCache(t), fetcher, jobs,
		WithInterval(time.Millisecond))

	_, err := svc.Submit(context.Background(), "two-sum", "func twoSum() {}", "go")
	if !errors.Is(err, leetcli.ErrNotAuthenticated) {
		t.Fatalf("err = %v, want ErrNotAuthenticated", err)
	}
	if fetcher.Calls() != 0 {
		t.Error("fetcher must not be called for an unauthenticated caller")
	}
	if jobs.Starts() != 0 {
		t.Error("no job may be started for an unauthenticated caller")
	}
}

func TestSubmitProblemNotFound(t *testing.T) {
	t.Parallel()
	fetcher := &testutil.FakeFetcher{}
	jobs := &testutil.FakeJobClient{}
	svc := NewService(&testutil.FakeAuth{Authenticated: true}, newTestCache(t), fetcher, jobs,
		WithInterval(time.Millisecond))

	_, err := svc.Submit(context.Background(), "no-such-problem", "src", "go")
	if !errors.Is(err, leetcli.ErrProblemNotFound) {
		t.Fatalf("err = %v, want ErrProblemNotFound", err)
	}
	if jobs.Starts() != 0 {
		t.Error("no job may be started for an unresolved problem")
	}
}

func TestSubmitWarmCacheIssuesNoFetch(t *testing.T) {
	t.Parallel()
	c := newTestCache(t)
	if err := c.PutProblem(context.Background(), twoSum()); err != nil {
		t.Fatal(err)
	}

	// The fetcher knows nothing: any fetch would fail the submit.
	fetcher := &testutil.FakeFetcher{}
	jobs := &testutil.FakeJobClient{Steps: []testutil.CheckStep{acceptedStep()}}
	svc := NewService(&testutil.FakeAuth{Authenticated: true}, c, fetcher, jobs,
		WithInterval(time.Millisecond))

	res, err := svc.Submit(context.Background(), "two-sum", "src", "go")
	if err != nil {
		t.Fatal(err)
	}
	if res.State != leetcli.ResultAccepted {
		t.Errorf("state = %s", res.State)
	}
	if fetcher.Calls() != 0 {
		t.Errorf("fetch calls = %d, want 0 with a warm cache", fetcher.Calls())
	}
}

func TestResolveProblemIsIdempotent(t *testing.T) {
	t.Parallel()
	fetcher := &testutil.FakeFetcher{Problems: map[string]*leetcli.ProblemMeta{"two-sum": twoSum()}}
	svc := NewService(&testutil.FakeAuth{Authenticated: true}, newTestCache(t), fetcher, &testutil.FakeJobClient{})

	ctx := context.Background()
	for range 2 {
		meta, err := svc.ResolveProblem(ctx, "two-sum")
		if err != nil {
			t.Fatal(err)
		}
		if meta.Title != "Two Sum" {
			t.Errorf("meta = %+v", meta)
		}
	}
	if fetcher.Calls() != 1 {
		t.Errorf("fetch calls = %d, want 1 (second resolve served from cache)", fetcher.Calls())
	}
}

func TestSubmitStartTransportErrorIsFatal(t *testing.T) {
	t.Parallel()
	fetcher := &testutil.FakeFetcher{Problems: map[string]*leetcli.ProblemMeta{"two-sum": twoSum()}}
	jobs := &testutil.FakeJobClient{
		StartErr: &leetcli.TransportError{Op: "submit", Err: errors.New("dial tcp: i/o timeout")},
	}
	svc := NewService(&testutil.FakeAuth{Authenticated: true}, newTestCache(t), fetcher, jobs,
		WithInterval(time.Millisecond))

	_, err := svc.Submit(context.Background(), "two-sum", "src", "go")
	if err == nil {
		t.Fatal("want error")
	}
	if !leetcli.IsTransport(err) {
		t.Errorf("err = %v, want a TransportError", err)
	}
	if jobs.Checks() != 0 {
		t.Error("a failed start must not be polled")
	}
	if jobs.Starts() != 1 {
		t.Errorf("starts = %d, job starts are at-most-once", jobs.Starts())
	}
}

func TestRunTestsPassesThroughOutputs(t *testing.T) {
	t.Parallel()
	fetcher := &testutil.FakeFetcher{Problems: map[string]*leetcli.ProblemMeta{"two-sum": twoSum()}}
	jobs := &testutil.FakeJobClient{Steps: []testutil.CheckStep{
		{Check: &leetcli.StatusCheck{
			State:          leetcli.StateSucceeded,
			RunSuccess:     false,
			StatusCode:     11,
			StatusMsg:      "Wrong Answer",
			CodeOutput:     "[1,0]",
			ExpectedOutput: "[0,1]",
			LastTestcase:   "[2,7,11,15]\n9",
		}},
	}}
	svc := NewService(&testutil.FakeAuth{Authenticated: true}, newTestCache(t), fetcher, jobs,
		WithInterval(time.Millisecond))

	res, err := svc.RunTests(context.Background(), "two-sum", "src", "python", "")
	if err != nil {
		t.Fatal(err)
	}
	if res.State != leetcli.ResultRejected {
		t.Errorf("state = %s, want rejected", res.State)
	}
	if res.ExpectedOutput != "[0,1]" || res.CodeOutput != "[1,0]" {
		t.Errorf("outputs = %q / %q", res.CodeOutput, res.ExpectedOutput)
	}
	if res.Kind != leetcli.JobTest {
		t.Errorf("kind = %s", res.Kind)
	}
}
