// Package cache provides the typed, TTL-based local cache for platform data.
//
// Reads go through a small in-memory hot tier, then the SQLite store. A miss
// and a stale record are indistinguishable to callers: both come back as
// "no value" and trigger a re-fetch from the platform. Undecodable payloads
// are logged and treated as misses, never surfaced as errors.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	leetcli "github.com/leetcli/leetcli/internal"
	"github.com/leetcli/leetcli/internal/storage"
)

// Cache is the typed facade over the cache store.
type Cache struct {
	store   storage.CacheStore
	hot     *front
	ttl     time.Duration
	kindTTL map[storage.Kind]time.Duration
	now     func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source used for freshness checks.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithKindTTL overrides the TTL for a single kind.
func WithKindTTL(kind storage.Kind, ttl time.Duration) Option {
	return func(c *Cache) { c.kindTTL[kind] = ttl }
}

// New creates a Cache over store with the given process-wide TTL.
// frontMaxSize caps the in-memory hot tier; zero disables it.
func New(store storage.CacheStore, ttl time.Duration, frontMaxSize int, opts ...Option) (*Cache, error) {
	c := &Cache{
		store:   store,
		ttl:     ttl,
		kindTTL: make(map[storage.Kind]time.Duration),
		now:     time.Now,
	}
	if frontMaxSize > 0 {
		hot, err := newFront(frontMaxSize, ttl)
		if err != nil {
			return nil, err
		}
		c.hot = hot
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Cache) ttlFor(kind storage.Kind) time.Duration {
	if ttl, ok := c.kindTTL[kind]; ok {
		return ttl
	}
	return c.ttl
}

// maxTTL is the eviction horizon: no record older than this can still be
// fresh under any per-kind override.
func (c *Cache) maxTTL() time.Duration {
	m := c.ttl
	for _, ttl := range c.kindTTL {
		if ttl > m {
			m = ttl
		}
	}
	return m
}

// lookup is the single read path shared by all kinds: hot tier, then store,
// then freshness check, then decode.
func lookup[T any](ctx context.Context, c *Cache, kind storage.Kind, key string) (T, bool, error) {
	var zero T

	if e, ok := c.hot.get(kind, key); ok && Fresh(e.writtenAt, c.ttlFor(kind), c.now()) {
		var v T
		if err := json.Unmarshal(e.payload, &v); err == nil {
			return v, true, nil
		}
		c.hot.invalidate(kind, key)
	}

	rec, err := c.store.Get(ctx, kind, key)
	if errors.Is(err, leetcli.ErrNotFound) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}
	if !Fresh(rec.WrittenAt, c.ttlFor(kind), c.now()) {
		return zero, false, nil
	}

	var v T
	if err := json.Unmarshal(rec.Payload, &v); err != nil {
		slog.Warn("discarding undecodable cache payload",
			"kind", kind, "key", key, "error", err)
		return zero, false, nil
	}
	c.hot.put(kind, key, rec.Payload, rec.WrittenAt)
	return v, true, nil
}

// put is the single write path shared by all kinds.
func put(ctx context.Context, c *Cache, kind storage.Kind, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := c.store.Put(ctx, kind, key, payload); err != nil {
		return err
	}
	c.hot.put(kind, key, payload, c.now())
	return nil
}

// --- Problems ---

// Problem returns the cached metadata for slug, if present and fresh.
func (c *Cache) Problem(ctx context.Context, slug string) (*leetcli.ProblemMeta, bool, error) {
	return lookup[*leetcli.ProblemMeta](ctx, c, storage.KindProblem, slug)
}

// PutProblem caches problem metadata keyed by its slug.
func (c *Cache) PutProblem(ctx context.Context, meta *leetcli.ProblemMeta) error {
	return put(ctx, c, storage.KindProblem, meta.TitleSlug, meta)
}

// --- Profiles ---

// Profile returns the cached profile for username, if present and fresh.
func (c *Cache) Profile(ctx context.Context, username string) (*leetcli.Profile, bool, error) {
	return lookup[*leetcli.Profile](ctx, c, storage.KindProfile, username)
}

// PutProfile caches a user profile keyed by username.
func (c *Cache) PutProfile(ctx context.Context, p *leetcli.Profile) error {
	return put(ctx, c, storage.KindProfile, p.Username, p)
}

// --- Daily challenges ---

// DailyChallenge returns the cached challenge for date (YYYY-MM-DD).
func (c *Cache) DailyChallenge(ctx context.Context, date string) (*leetcli.DailyChallenge, bool, error) {
	return lookup[*leetcli.DailyChallenge](ctx, c, storage.KindDaily, date)
}

// PutDailyChallenge caches a daily challenge keyed by its date.
func (c *Cache) PutDailyChallenge(ctx context.Context, d *leetcli.DailyChallenge) error {
	return put(ctx, c, storage.KindDaily, d.Date, d)
}

// --- Submissions ---

// submissionKey builds the composite replace-set key. The trailing slash on
// the prefix form keeps "ab" from matching "abc/..." batches.
func submissionKey(username, slug string) string {
	return username + "/" + slug
}

// Submissions returns the cached submission set for (username, slug),
// newest first. Stale and undecodable records are skipped per record.
func (c *Cache) Submissions(ctx context.Context, username, slug string) ([]leetcli.Submission, error) {
	prefix := username + "/"
	if slug != "" {
		prefix = submissionKey(username, slug)
	}
	recs, err := c.store.GetBatch(ctx, storage.KindSubmissions, prefix)
	if err != nil {
		return nil, err
	}

	ttl := c.ttlFor(storage.KindSubmissions)
	now := c.now()
	var out []leetcli.Submission
	for _, rec := range recs {
		if !Fresh(rec.WrittenAt, ttl, now) {
			continue
		}
		var s leetcli.Submission
		if err := json.Unmarshal(rec.Payload, &s); err != nil {
			slog.Warn("discarding undecodable cached submission", "key", rec.Key, "error", err)
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// PutSubmissions replaces the cached submission set for (username, slug).
func (c *Cache) PutSubmissions(ctx context.Context, username, slug string, subs []leetcli.Submission) error {
	payloads := make([][]byte, 0, len(subs))
	for _, s := range subs {
		b, err := json.Marshal(s)
		if err != nil {
			return err
		}
		payloads = append(payloads, b)
	}
	return c.store.ReplaceBatch(ctx, storage.KindSubmissions, submissionKey(username, slug), payloads)
}

// --- Stats (arbitrary JSON blobs) ---

// GetStat returns the cached value under an arbitrary stat key.
func GetStat[T any](ctx context.Context, c *Cache, key string) (T, bool, error) {
	return lookup[T](ctx, c, storage.KindStat, key)
}

// PutStat caches an arbitrary value under a stat key.
func PutStat(ctx context.Context, c *Cache, key string, v any) error {
	return put(ctx, c, storage.KindStat, key, v)
}

// --- Read-through ---

// ReadThrough returns the cached value for (kind, key) or, on miss, calls
// fetch, caches the result, and returns it. Cache write failures are logged
// rather than surfaced: the fetched value is still authoritative.
func ReadThrough[T any](ctx context.Context, c *Cache, kind storage.Kind, key string, fetch func(context.Context) (T, error)) (T, error) {
	v, ok, err := lookup[T](ctx, c, kind, key)
	if err != nil {
		return v, err
	}
	if ok {
		return v, nil
	}

	fetched, err := fetch(ctx)
	if err != nil {
		return fetched, err
	}
	if err := put(ctx, c, kind, key, fetched); err != nil {
		slog.Warn("caching fetched value failed", "kind", kind, "key", key, "error", err)
	}
	return fetched, nil
}

// --- Maintenance ---

// Stats returns the number of current records per kind.
func (c *Cache) Stats(ctx context.Context) (map[storage.Kind]int, error) {
	out := make(map[storage.Kind]int, len(storage.Kinds()))
	for _, kind := range storage.Kinds() {
		n, err := c.store.Count(ctx, kind)
		if err != nil {
			return nil, err
		}
		out[kind] = n
	}
	return out, nil
}

// CleanupExpired removes every record old enough to be stale under every
// configured TTL and returns the number removed.
func (c *Cache) CleanupExpired(ctx context.Context) (int, error) {
	return c.store.Sweep(ctx, c.now().Add(-c.maxTTL()))
}

// ClearKind empties one namespace.
func (c *Cache) ClearKind(ctx context.Context, kind storage.Kind) error {
	if err := c.store.DeleteAll(ctx, kind); err != nil {
		return err
	}
	c.hot.purge()
	return nil
}

// Clear empties every namespace.
func (c *Cache) Clear(ctx context.Context) error {
	if err := c.store.Purge(ctx); err != nil {
		return err
	}
	c.hot.purge()
	return nil
}
