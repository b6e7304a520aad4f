// Package storage defines persistence interfaces for the local cache.
package storage

import (
	"context"
	"time"
)

// Kind identifies one cache namespace. Each kind maps to its own table.
type Kind string

const (
	KindProblem     Kind = "problems"
	KindProfile     Kind = "profiles"
	KindDaily       Kind = "daily"
	KindSubmissions Kind = "submissions"
	KindStat        Kind = "stats"
)

// Kinds returns every cache namespace in a stable order.
func Kinds() []Kind {
	return []Kind{KindProblem, KindProfile, KindDaily, KindSubmissions, KindStat}
}

// Record is one cached row: an opaque JSON payload plus its write time.
type Record struct {
	Key       string
	Payload   []byte
	WrittenAt time.Time
}

// CacheStore is durable keyed storage with one namespace per entity kind.
// Writes replace: at most one current record exists per (kind, key), except
// KindSubmissions where ReplaceBatch maintains a replace-set per key.
type CacheStore interface {
	// Put upserts a record and stamps the current time.
	Put(ctx context.Context, kind Kind, key string, payload []byte) error
	// Get returns the current record for key, or leetcli.ErrNotFound.
	Get(ctx context.Context, kind Kind, key string) (*Record, error)
	// GetBatch returns all records whose key starts with keyPrefix,
	// most recently written first.
	GetBatch(ctx context.Context, kind Kind, keyPrefix string) ([]Record, error)
	// ReplaceBatch atomically swaps every record under key for payloads.
	ReplaceBatch(ctx context.Context, kind Kind, key string, payloads [][]byte) error
	// DeleteAll clears one namespace.
	DeleteAll(ctx context.Context, kind Kind) error
	// Purge clears every namespace.
	Purge(ctx context.Context) error
	// Count returns the number of current records in a namespace.
	Count(ctx context.Context, kind Kind) (int, error)
	// Sweep deletes every record across all kinds written before cutoff
	// and returns the total rows removed.
	Sweep(ctx context.Context, cutoff time.Time) (int, error)
	Close() error
}
