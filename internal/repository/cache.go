package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DedupeCache is a small local store of certificate hashes already processed
// in batch mode, so re-running a directory does not re-report courses. It is
// a cache, not the submission history; Postgres remains the durable record.
type DedupeCache struct {
	db *sql.DB
}

// OpenDedupeCache opens (and if needed initializes) the cache at path.
// ":memory:" works for tests.
func OpenDedupeCache(path string) (*DedupeCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open dedupe cache: %w", err)
	}
	const schema = `
		CREATE TABLE IF NOT EXISTS seen_certificates (
			content_sha TEXT PRIMARY KEY,
			filename    TEXT NOT NULL,
			seen_at     TIMESTAMP NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init dedupe cache: %w", err)
	}
	return &DedupeCache{db: db}, nil
}

// Seen reports whether a certificate hash was already processed.
func (c *DedupeCache) Seen(ctx context.Context, contentSHA string) (bool, error) {
	var one int
	err := c.db.QueryRowContext(ctx,
		`SELECT 1 FROM seen_certificates WHERE content_sha = ?`, contentSHA).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query dedupe cache: %w", err)
	}
	return true, nil
}

// MarkSeen records a processed certificate hash. Re-marking is a no-op.
func (c *DedupeCache) MarkSeen(ctx context.Context, contentSHA, filename string) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO seen_certificates (content_sha, filename, seen_at)
		VALUES (?, ?, ?)
		ON CONFLICT(content_sha) DO NOTHING`,
		contentSHA, filename, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("mark seen: %w", err)
	}
	return nil
}

func (c *DedupeCache) Close() error {
	return c.db.Close()
}
