package cache

import (
	"fmt"
	"time"

	"github.com/maypok86/otter/v2"

	"github.com/leetcli/leetcli/internal/storage"
)

// entry wraps a cached payload with the time it was written to the store.
// Freshness is re-checked on every read, so the hot tier never outlives the
// durable record it mirrors.
type entry struct {
	payload   []byte
	writtenAt time.Time
}

// front is an in-memory W-TinyLFU hot tier backed by otter, keyed by
// (kind, key). It sits in front of the SQLite store to skip the disk read
// for keys hit repeatedly within one process.
type front struct {
	cache *otter.Cache[string, entry]
}

func newFront(maxSize int, ttl time.Duration) (*front, error) {
	c, err := otter.New[string, entry](&otter.Options[string, entry]{
		MaximumSize:      maxSize,
		ExpiryCalculator: otter.ExpiryWriting[string, entry](ttl),
	})
	if err != nil {
		return nil, fmt.Errorf("create front cache: %w", err)
	}
	return &front{cache: c}, nil
}

func frontKey(kind storage.Kind, key string) string {
	return string(kind) + "/" + key
}

func (f *front) get(kind storage.Kind, key string) (entry, bool) {
	if f == nil {
		return entry{}, false
	}
	return f.cache.GetIfPresent(frontKey(kind, key))
}

func (f *front) put(kind storage.Kind, key string, payload []byte, writtenAt time.Time) {
	if f == nil {
		return
	}
	f.cache.Set(frontKey(kind, key), entry{payload: payload, writtenAt: writtenAt})
}

func (f *front) invalidate(kind storage.Kind, key string) {
	if f == nil {
		return
	}
	f.cache.Invalidate(frontKey(kind, key))
}

func (f *front) purge() {
	if f == nil {
		return
	}
	f.cache.InvalidateAll()
}
