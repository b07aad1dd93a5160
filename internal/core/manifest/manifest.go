// Package manifest tracks which remote files have already been embedded
// and stored, so unchanged corpora cost zero work on later runs.
//
// Identity is by remote file id only: a document edited in place under
// the same id is never re-ingested. The modified_time column is recorded
// per row so change detection can be added without a schema migration.
package manifest

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/adityakp-dev/Acadex/internal/core"
)

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the manifest database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open manifest db: %w", err)
	}

	// The manifest sees one writer (the sync loop); a single connection
	// sidesteps sqlite's multi-writer locking.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping manifest db: %w", err)
	}

	if err := ensureBootstrapped(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap manifest: %w", err)
	}

	return &Store{db: db}, nil
}

var _ core.Manifest = (*Store)(nil)

func ensureBootstrapped(ctx context.Context, db *sql.DB) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS ingested_files (
			file_id       TEXT PRIMARY KEY,
			ingested_at   TIMESTAMP NOT NULL,
			modified_time TEXT NOT NULL DEFAULT ''
		)
	`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Contains reports whether the file id was already ingested.
func (s *Store) Contains(ctx context.Context, fileID string) (bool, error) {
	const q = `SELECT 1 FROM ingested_files WHERE file_id = ?`
	var one int
	err := s.db.QueryRowContext(ctx, q, fileID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Mark records the file id. Called only after the file's chunks were
// successfully upserted, so a crash mid-ingestion leaves the file
// eligible for retry on the next run.
func (s *Store) Mark(ctx context.Context, fileID string, modifiedTime string) error {
	const q = `
		INSERT INTO ingested_files (file_id, ingested_at, modified_time)
		VALUES (?, ?, ?)
		ON CONFLICT(file_id) DO UPDATE SET
			ingested_at   = excluded.ingested_at,
			modified_time = excluded.modified_time
	`
	_, err := s.db.ExecContext(ctx, q, fileID, time.Now().UTC(), modifiedTime)
	return err
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
