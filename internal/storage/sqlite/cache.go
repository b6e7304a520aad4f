package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	leetcli "github.com/leetcli/leetcli/internal"
	"github.com/leetcli/leetcli/internal/storage"
)

// tables maps each cache kind to its backing table. Table names are taken
// from this fixed map, never from caller input.
var tables = map[storage.Kind]string{
	storage.KindProblem:     "problems_cache",
	storage.KindProfile:     "profiles_cache",
	storage.KindDaily:       "daily_cache",
	storage.KindSubmissions: "submissions_cache",
	storage.KindStat:        "stats_cache",
}

func tableFor(kind storage.Kind) (string, error) {
	t, ok := tables[kind]
	if !ok {
		return "", fmt.Errorf("unknown cache kind %q", kind)
	}
	return t, nil
}

// Put upserts a record for (kind, key) and stamps the current time.
// For the submissions kind, which has no unique key, this degenerates to a
// single-element ReplaceBatch.
func (s *Store) Put(ctx context.Context, kind storage.Kind, key string, payload []byte) error {
	if kind == storage.KindSubmissions {
		return s.ReplaceBatch(ctx, kind, key, [][]byte{payload})
	}
	table, err := tableFor(kind)
	if err != nil {
		return err
	}
	_, err = s.write.ExecContext(ctx,
		`INSERT INTO `+table+` (key, payload, cached_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, cached_at = excluded.cached_at`,
		key, string(payload), s.now().UTC().Format(time.RFC3339),
	)
	return err
}

// Get returns the current record for (kind, key), or leetcli.ErrNotFound.
func (s *Store) Get(ctx context.Context, kind storage.Kind, key string) (*storage.Record, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	row := s.read.QueryRowContext(ctx,
		`SELECT key, payload, cached_at FROM `+table+`
		 WHERE key = ? ORDER BY cached_at DESC LIMIT 1`, key,
	)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, leetcli.ErrNotFound
	}
	return rec, err
}

// escapeLike makes s match literally inside a LIKE pattern. Keys routinely
// contain underscores (usernames), which LIKE would otherwise treat as a
// single-character wildcard.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// GetBatch returns every record whose key starts with keyPrefix, most
// recently written first.
func (s *Store) GetBatch(ctx context.Context, kind storage.Kind, keyPrefix string) ([]storage.Record, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	rows, err := s.read.QueryContext(ctx,
		`SELECT key, payload, cached_at FROM `+table+`
		 WHERE key LIKE ? ESCAPE '\' ORDER BY cached_at DESC, rowid DESC`,
		escapeLike(keyPrefix)+"%",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []storage.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// ReplaceBatch atomically swaps every record under key for payloads,
// stamping all inserts with the current time. A reader racing the swap
// observes either the old set or the new one, never a mix.
func (s *Store) ReplaceBatch(ctx context.Context, kind storage.Kind, key string, payloads [][]byte) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}
	tx, err := s.write.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE key = ?`, key); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO `+table+` (key, payload, cached_at) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	stamp := s.now().UTC().Format(time.RFC3339)
	for _, p := range payloads {
		if _, err := stmt.ExecContext(ctx, key, string(p), stamp); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// DeleteAll clears one namespace.
func (s *Store) DeleteAll(ctx context.Context, kind storage.Kind) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}
	_, err = s.write.ExecContext(ctx, `DELETE FROM `+table)
	return err
}

// Purge clears every namespace.
func (s *Store) Purge(ctx context.Context) error {
	for _, kind := range storage.Kinds() {
		if err := s.DeleteAll(ctx, kind); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of current records in a namespace.
func (s *Store) Count(ctx context.Context, kind storage.Kind) (int, error) {
	table, err := tableFor(kind)
	if err != nil {
		return 0, err
	}
	var n int
	err = s.read.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n)
	return n, err
}

// Sweep deletes every record across all kinds written before cutoff and
// returns the total rows removed.
func (s *Store) Sweep(ctx context.Context, cutoff time.Time) (int, error) {
	cutoffStr := cutoff.UTC().Format(time.RFC3339)
	total := 0
	for _, kind := range storage.Kinds() {
		table, err := tableFor(kind)
		if err != nil {
			return total, err
		}
		res, err := s.write.ExecContext(ctx,
			`DELETE FROM `+table+` WHERE cached_at < ?`, cutoffStr)
		if err != nil {
			return total, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, err
		}
		total += int(n)
	}
	return total, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*storage.Record, error) {
	var rec storage.Record
	var payload, cachedAt string
	if err := sc.Scan(&rec.Key, &payload, &cachedAt); err != nil {
		return nil, err
	}
	rec.Payload = []byte(payload)
	// A malformed timestamp leaves WrittenAt zero, which the freshness
	// check treats as stale.
	if t, err := time.Parse(time.RFC3339, cachedAt); err == nil {
		rec.WrittenAt = t
	}
	return &rec, nil
}
