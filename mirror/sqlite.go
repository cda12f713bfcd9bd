package mirror

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/glebarez/go-sqlite"

	"github.com/krisalay/expiring-registry/types"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS domains (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    duration INTEGER NOT NULL,
    inserted_at TEXT NOT NULL,
    expires_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_domains_expires_at ON domains(expires_at);
`

// A key can be reused once the sweep frees it, so the latest insert wins.
const upsertSQL = `
INSERT INTO domains (id, name, duration, inserted_at, expires_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    duration = excluded.duration,
    inserted_at = excluded.inserted_at,
    expires_at = excluded.expires_at
`

// SQLite mirrors inserts into a domains table.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database file at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One writer keeps SQLite out of "database is locked" and keeps :memory: on one connection.
	db.SetMaxOpenConns(1)

	s, err := NewSQLite(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLite wraps an open database and makes sure the schema exists.
func NewSQLite(ctx context.Context, db *sql.DB) (*SQLite, error) {
	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		return nil, fmt.Errorf("create domains table: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Put(ctx context.Context, ent types.Entry) error {
	inserted := ent.InsertedAt.UTC()
	_, err := s.db.ExecContext(ctx, upsertSQL,
		ent.Record.ID,
		ent.Record.Name,
		ent.Record.Duration,
		inserted.Format(time.RFC3339Nano),
		inserted.Add(ent.Record.TTL()).Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert domain %d: %w", ent.Record.ID, err)
	}
	return nil
}

// CountLive returns how many mirrored domains have not expired at now.
func (s *SQLite) CountLive(ctx context.Context, now time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM domains WHERE expires_at > ?",
		now.UTC().Format(time.RFC3339Nano),
	).Scan(&count)
	return count, err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
