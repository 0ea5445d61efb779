// Package cache persists recently fetched threads and frontpage listings
// in a local sqlite database, with capacity-bounded pruning and a
// content-fingerprint diff between cached and fresh item sets.
package cache

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"

	"github.com/a-Gb/hankerlytics/pkg/model"
)

// Default retention capacities, separately for the two namespaces.
const (
	DefaultThreadCapacity  = 20
	DefaultListingCapacity = 6
)

// Entry is one cached item set with its fetch time.
type Entry struct {
	Items     []model.Item
	FetchedAt time.Time
}

// Store handles cache persistence. Read failures of any kind degrade to a
// cache miss; the store never fails a load pipeline.
type Store struct {
	db         *sql.DB
	threadCap  int
	listingCap int
}

// Open opens or creates the cache database at the given path. Zero
// capacities use the defaults.
func Open(dbPath string, threadCap, listingCap int) (*Store, error) {
	if threadCap <= 0 {
		threadCap = DefaultThreadCapacity
	}
	if listingCap <= 0 {
		listingCap = DefaultListingCapacity
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	s := &Store{db: db, threadCap: threadCap, listingCap: listingCap}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS threads (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		fetched_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS listings (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		fetched_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_threads_fetched ON threads(fetched_at);
	CREATE INDEX IF NOT EXISTS idx_listings_fetched ON listings(fetched_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// GetThread returns the cached item set for a thread key, or nil on miss.
func (s *Store) GetThread(key string) *Entry {
	return s.get("threads", key)
}

// PutThread stores a thread's item set under key and prunes the oldest
// entries beyond the thread capacity.
func (s *Store) PutThread(key string, items []model.Item) error {
	return s.put("threads", key, items, s.threadCap)
}

// GetListing returns the cached item set for a frontpage listing key, or
// nil on miss.
func (s *Store) GetListing(key string) *Entry {
	return s.get("listings", key)
}

// PutListing stores a listing's item set under key and prunes the oldest
// entries beyond the listing capacity.
func (s *Store) PutListing(key string, items []model.Item) error {
	return s.put("listings", key, items, s.listingCap)
}

// get reads one entry. Any failure — missing row, corrupt payload, broken
// database — is logged and treated as a miss, never surfaced.
func (s *Store) get(table, key string) *Entry {
	var payload []byte
	var fetchedAt time.Time
	err := s.db.QueryRow(
		fmt.Sprintf(`SELECT payload, fetched_at FROM %s WHERE key = ?`, table), key,
	).Scan(&payload, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		log.Printf("warning: cache read %s/%s failed, treating as miss: %v", table, key, err)
		return nil
	}

	var items []model.Item
	if err := json.Unmarshal(payload, &items); err != nil {
		log.Printf("warning: cache payload %s/%s corrupt, treating as miss: %v", table, key, err)
		return nil
	}
	return &Entry{Items: items, FetchedAt: fetchedAt}
}

func (s *Store) put(table, key string, items []model.Item, capacity int) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cache payload: %w", err)
	}

	_, err = s.db.Exec(
		fmt.Sprintf(`INSERT OR REPLACE INTO %s (key, payload, fetched_at) VALUES (?, ?, ?)`, table),
		key, payload, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}

	// Evict oldest-by-fetchedAt beyond the capacity.
	_, err = s.db.Exec(fmt.Sprintf(`
		DELETE FROM %s WHERE key NOT IN (
			SELECT key FROM %s ORDER BY fetched_at DESC LIMIT ?
		)`, table, table), capacity)
	if err != nil {
		return fmt.Errorf("prune cache: %w", err)
	}
	return nil
}

// Count returns the number of rows in a namespace; used by tests and the
// status display.
func (s *Store) Count(table string) (int, error) {
	var n int
	err := s.db.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&n)
	return n, err
}
