// Package cache implements the optional persisted schedule-computation
// accelerator described in §6: a small SQLite file under .ttr/cache/ that
// survives across process runs, keyed by a content hash of the task set it
// was computed from. It reuses the teacher's db.Open pattern (a lazily
// created SQLite file under a workspace-relative directory) but the
// database itself is disposable — a missing or corrupt cache file is
// never an error, only a cache miss.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const fileName = "schedule.db"

// Store wraps a lazily opened SQLite connection. A nil *Store (returned
// when Open fails) is safe to call Get/Put on; both become no-ops so a
// broken cache never blocks a schedule computation.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the cache database under
// <workspace>/.ttr/cache/. Callers should treat a non-nil error as
// advisory: the engine works correctly without a cache, just slower on
// cold runs.
func Open(workspace string) (*Store, error) {
	dir := filepath.Join(workspace, ".ttr", "cache")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, fileName)
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(2000)", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec(`CREATE TABLE IF NOT EXISTS schedule_cache (
		cache_key     TEXT PRIMARY KEY,
		content_hash  TEXT NOT NULL,
		computed_json TEXT NOT NULL
	)`); err != nil {
		conn.Close()
		return nil, err
	}
	return &Store{db: conn}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ContentHash produces the stable key namespace against which a cache
// entry is validated: two runs over the same task set produce the same
// hash regardless of process, so a stale cache entry (content changed)
// is detected without touching the filesystem timestamps.
func ContentHash(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Get looks up cacheKey and unmarshals its stored JSON into out if the
// stored content hash matches wantHash. A miss (not found, hash
// mismatch, or no store) returns found=false and never an error.
func (s *Store) Get(cacheKey, wantHash string, out any) (found bool) {
	if s == nil || s.db == nil {
		return false
	}
	var hash, payload string
	err := s.db.QueryRow(`SELECT content_hash, computed_json FROM schedule_cache WHERE cache_key = ?`, cacheKey).Scan(&hash, &payload)
	if err != nil || hash != wantHash {
		return false
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return false
	}
	return true
}

// Put stores v under cacheKey with contentHash, overwriting any prior
// entry. Failures are swallowed by the caller's choice not to check the
// error; Put still returns it for callers that want to log a warning.
func (s *Store) Put(cacheKey, contentHash string, v any) error {
	if s == nil || s.db == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO schedule_cache (cache_key, content_hash, computed_json) VALUES (?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET content_hash = excluded.content_hash, computed_json = excluded.computed_json`,
		cacheKey, contentHash, string(data))
	return err
}
