// Package store persists working text and fetched catalogs in a local
// SQLite database.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no row exists for a key.
var ErrNotFound = errors.New("not found")

// Store wraps the SQLite database.
type Store struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// Open creates or opens the database at path.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	// A single connection keeps :memory: databases coherent.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path, now: time.Now}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	autosaveTable := `
	CREATE TABLE IF NOT EXISTS autosave (
		catalog_key TEXT PRIMARY KEY,
		text TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`

	cacheTable := `
	CREATE TABLE IF NOT EXISTS catalog_cache (
		source TEXT PRIMARY KEY,
		body BLOB NOT NULL,
		fingerprint TEXT NOT NULL,
		fetched_at INTEGER NOT NULL
	);
	`

	for _, table := range []string{autosaveTable, cacheTable} {
		if _, err := s.db.Exec(table); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// --- Autosave ---

// SaveText stores the working text for a catalog, replacing any earlier text.
func (s *Store) SaveText(ctx context.Context, catalogKey, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO autosave (catalog_key, text, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(catalog_key) DO UPDATE SET text = excluded.text, updated_at = excluded.updated_at`,
		catalogKey, text, s.now().Unix())
	if err != nil {
		return fmt.Errorf("save text: %w", err)
	}
	return nil
}

// LoadText returns the saved working text for a catalog.
func (s *Store) LoadText(ctx context.Context, catalogKey string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var text string
	err := s.db.QueryRowContext(ctx,
		`SELECT text FROM autosave WHERE catalog_key = ?`, catalogKey).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load text: %w", err)
	}
	return text, nil
}

// ClearText drops the saved working text for a catalog.
func (s *Store) ClearText(ctx context.Context, catalogKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM autosave WHERE catalog_key = ?`, catalogKey); err != nil {
		return fmt.Errorf("clear text: %w", err)
	}
	return nil
}

// --- Catalog Cache ---

// CachedCatalog is a catalog body kept from an earlier fetch.
type CachedCatalog struct {
	Source      string
	Body        []byte
	Fingerprint string
	FetchedAt   time.Time
}

// Fingerprint returns the hex sha256 of a catalog body.
func Fingerprint(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// PutCatalog caches the body fetched from source.
func (s *Store) PutCatalog(ctx context.Context, source string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO catalog_cache (source, body, fingerprint, fetched_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(source) DO UPDATE SET body = excluded.body,
			fingerprint = excluded.fingerprint, fetched_at = excluded.fetched_at`,
		source, body, Fingerprint(body), s.now().Unix())
	if err != nil {
		return fmt.Errorf("cache catalog: %w", err)
	}
	return nil
}

// GetCatalog returns the cached body for source.
func (s *Store) GetCatalog(ctx context.Context, source string) (*CachedCatalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := CachedCatalog{Source: source}
	var fetched int64
	err := s.db.QueryRowContext(ctx,
		`SELECT body, fingerprint, fetched_at FROM catalog_cache WHERE source = ?`, source).
		Scan(&c.Body, &c.Fingerprint, &fetched)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read cached catalog: %w", err)
	}
	c.FetchedAt = time.Unix(fetched, 0)
	return &c, nil
}
