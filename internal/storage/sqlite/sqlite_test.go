package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	leetcli "github.com/leetcli/leetcli/internal"
	"github.com/leetcli/leetcli/internal/storage"
)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	// Use a unique file-based temp DB for each test to avoid shared :memory: races
	path := t.TempDir() + "/cache.db"
	s, err := New(path, opts...)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutReplacesOnWrite(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, storage.KindProblem, "two-sum", []byte(`{"v":1}`)); err != nil {
		t.Fatal("put:", err)
	}
	if err := s.Put(ctx, storage.KindProblem, "two-sum", []byte(`{"v":2}`)); err != nil {
		t.Fatal("second put:", err)
	}

	n, err := s.Count(ctx, storage.KindProblem)
	if err != nil {
		t.Fatal("count:", err)
	}
	if n != 1 {
		t.Fatalf("count = %d, want exactly 1 after double write", n)
	}

	rec, err := s.Get(ctx, storage.KindProblem, "two-sum")
	if err != nil {
		t.Fatal("get:", err)
	}
	if string(rec.Payload) != `{"v":2}` {
		t.Errorf("payload = %s, want latest write", rec.Payload)
	}
	if rec.WrittenAt.IsZero() {
		t.Error("written_at should be stamped")
	}
}

func TestGetMissing(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	_, err := s.Get(context.Background(), storage.KindProfile, "nobody")
	if !errors.Is(err, leetcli.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestReplaceBatchSwapsSet(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	key := "alice/two-sum"
	first := [][]byte{[]byte(`{"id":"1"}`), []byte(`{"id":"2"}`), []byte(`{"id":"3"}`)}
	if err := s.ReplaceBatch(ctx, storage.KindSubmissions, key, first); err != nil {
		t.Fatal("replace:", err)
	}
	second := [][]byte{[]byte(`{"id":"4"}`)}
	if err := s.ReplaceBatch(ctx, storage.KindSubmissions, key, second); err != nil {
		t.Fatal("second replace:", err)
	}

	recs, err := s.GetBatch(ctx, storage.KindSubmissions, key)
	if err != nil {
		t.Fatal("get batch:", err)
	}
	if len(recs) != 1 {
		t.Fatalf("batch len = %d, want 1 after replace", len(recs))
	}
	if string(recs[0].Payload) != `{"id":"4"}` {
		t.Errorf("payload = %s", recs[0].Payload)
	}
}

func TestGetBatchPrefixAndOrder(t *testing.T) {
	t.Parallel()
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	now := base
	s := newTestStore(t, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	if err := s.ReplaceBatch(ctx, storage.KindSubmissions, "alice/two-sum", [][]byte{[]byte(`"old"`)}); err != nil {
		t.Fatal(err)
	}
	now = base.Add(time.Minute)
	if err := s.ReplaceBatch(ctx, storage.KindSubmissions, "alice/add-two-numbers", [][]byte{[]byte(`"new"`)}); err != nil {
		t.Fatal(err)
	}
	if err := s.ReplaceBatch(ctx, storage.KindSubmissions, "bob/two-sum", [][]byte{[]byte(`"other"`)}); err != nil {
		t.Fatal(err)
	}

	recs, err := s.GetBatch(ctx, storage.KindSubmissions, "alice/")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("batch len = %d, want 2 (bob excluded)", len(recs))
	}
	// Most recent first.
	if string(recs[0].Payload) != `"new"` || string(recs[1].Payload) != `"old"` {
		t.Errorf("order = [%s, %s], want newest first", recs[0].Payload, recs[1].Payload)
	}
}

func TestGetBatchPrefixMatchesLiterally(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	// LIKE metacharacters in keys must not act as wildcards: "a_b/" is a
	// different user than "axb/".
	if err := s.ReplaceBatch(ctx, storage.KindSubmissions, "a_b/two-sum", [][]byte{[]byte(`"mine"`)}); err != nil {
		t.Fatal(err)
	}
	if err := s.ReplaceBatch(ctx, storage.KindSubmissions, "axb/two-sum", [][]byte{[]byte(`"theirs"`)}); err != nil {
		t.Fatal(err)
	}
	if err := s.ReplaceBatch(ctx, storage.KindSubmissions, "a%b/two-sum", [][]byte{[]byte(`"percent"`)}); err != nil {
		t.Fatal(err)
	}

	recs, err := s.GetBatch(ctx, storage.KindSubmissions, "a_b/")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("batch len = %d, want 1: underscore must not match other keys", len(recs))
	}
	if recs[0].Key != "a_b/two-sum" {
		t.Errorf("key = %q, want a_b/two-sum", recs[0].Key)
	}

	recs, err = s.GetBatch(ctx, storage.KindSubmissions, "a%b/")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].Key != "a%b/two-sum" {
		t.Fatalf("percent prefix matched %d records, want exactly its own", len(recs))
	}
}

func TestSweepRemovesOnlyOldRecords(t *testing.T) {
	t.Parallel()
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	now := base.Add(-2 * time.Hour)
	s := newTestStore(t, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	// One record two hours old, one fresh.
	if err := s.Put(ctx, storage.KindProblem, "stale-problem", []byte(`{}`)); err != nil {
		t.Fatal(err)
	}
	now = base
	if err := s.Put(ctx, storage.KindProfile, "fresh-profile", []byte(`{}`)); err != nil {
		t.Fatal(err)
	}

	removed, err := s.Sweep(ctx, base.Add(-time.Hour))
	if err != nil {
		t.Fatal("sweep:", err)
	}
	if removed < 1 {
		t.Errorf("removed = %d, want >= 1", removed)
	}

	if _, err := s.Get(ctx, storage.KindProblem, "stale-problem"); !errors.Is(err, leetcli.ErrNotFound) {
		t.Errorf("stale record should be swept, got err = %v", err)
	}
	if _, err := s.Get(ctx, storage.KindProfile, "fresh-profile"); err != nil {
		t.Errorf("fresh record should survive sweep, got err = %v", err)
	}
}

func TestDeleteAllAndPurge(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, storage.KindProblem, "p", []byte(`{}`)); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, storage.KindStat, "s", []byte(`{}`)); err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteAll(ctx, storage.KindProblem); err != nil {
		t.Fatal("delete all:", err)
	}
	if n, _ := s.Count(ctx, storage.KindProblem); n != 0 {
		t.Errorf("problems count = %d after DeleteAll", n)
	}
	if n, _ := s.Count(ctx, storage.KindStat); n != 1 {
		t.Errorf("stats count = %d, other kinds must be untouched", n)
	}

	if err := s.Purge(ctx); err != nil {
		t.Fatal("purge:", err)
	}
	for _, kind := range storage.Kinds() {
		if n, _ := s.Count(ctx, kind); n != 0 {
			t.Errorf("%s count = %d after Purge", kind, n)
		}
	}
}

func TestUnknownKindRejected(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	if err := s.Put(context.Background(), storage.Kind("bogus"), "k", nil); err == nil {
		t.Error("put with unknown kind should fail")
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	t.Parallel()
	path := t.TempDir() + "/cache.db"

	s1, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s1.Put(context.Background(), storage.KindProblem, "p", []byte(`{}`)); err != nil {
		t.Fatal(err)
	}
	s1.Close()

	// Reopening runs migrations again; existing data must survive.
	s2, err := New(path)
	if err != nil {
		t.Fatal("reopen:", err)
	}
	defer s2.Close()
	if _, err := s2.Get(context.Background(), storage.KindProblem, "p"); err != nil {
		t.Errorf("record lost across reopen: %v", err)
	}
}
