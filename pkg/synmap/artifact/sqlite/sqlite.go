package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/synmap/pkg/synmap/artifact"
	"github.com/cognicore/synmap/pkg/synmap/internalerr"
)

// sqliteStore implements artifact.Store on a single SQLite file, so a model
// bundle can carry all of its documents in one place.
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and creates the
// documents table if needed.
func Open(ctx context.Context, path string) (artifact.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %v: %w", path, err, internalerr.ErrStoreUnavailable)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: enable wal: %v: %w", path, err, internalerr.ErrStoreUnavailable)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS documents (
	name TEXT PRIMARY KEY,
	body BLOB NOT NULL,
	updated_at TEXT NOT NULL
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Write inserts or replaces a document
func (s *sqliteStore) Write(ctx context.Context, name string, data []byte) error {
	if err := artifact.ValidateName(name); err != nil {
		return err
	}
	if data == nil {
		data = []byte{}
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO documents (name, body, updated_at) VALUES (?, ?, ?)
ON CONFLICT(name) DO UPDATE SET body=excluded.body, updated_at=excluded.updated_at;
`, name, data, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Read returns the named document
func (s *sqliteStore) Read(ctx context.Context, name string) ([]byte, error) {
	if err := artifact.ValidateName(name); err != nil {
		return nil, err
	}
	var body []byte
	err := s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE name=?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %q: %w", name, internalerr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}

// Exists reports whether a document is stored under name
func (s *sqliteStore) Exists(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents WHERE name=?`, name).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
