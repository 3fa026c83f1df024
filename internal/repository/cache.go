package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrCacheMiss is returned when no entry exists for the bucket/path pair.
var ErrCacheMiss = errors.New("cache entry not found")

// CacheEntry is a single cached resource.
type CacheEntry struct {
	Path        string
	ContentType string
	Body        []byte
	FetchedAt   time.Time
}

// CacheRepository stores versioned buckets of cached resources.
type CacheRepository interface {
	// PutBucket atomically replaces the full contents of a bucket.
	PutBucket(ctx context.Context, bucket string, entries []CacheEntry) error
	Get(ctx context.Context, bucket, path string) (*CacheEntry, error)
	Buckets(ctx context.Context) ([]string, error)
	DeleteBucket(ctx context.Context, bucket string) error
}

// SQLiteCacheRepository implements CacheRepository on the embedded database.
type SQLiteCacheRepository struct {
	db *sql.DB
}

// NewSQLiteCacheRepository instantiates a cache repository.
func NewSQLiteCacheRepository(db *sql.DB) *SQLiteCacheRepository {
	return &SQLiteCacheRepository{db: db}
}

// PutBucket writes all entries in one transaction so a failed install never
// leaves a partially populated bucket behind.
func (r *SQLiteCacheRepository) PutBucket(ctx context.Context, bucket string, entries []CacheEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cache transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cache_entries WHERE bucket = ?`, bucket); err != nil {
		return fmt.Errorf("clear bucket %q: %w", bucket, err)
	}

	for _, entry := range entries {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO cache_entries (bucket, path, content_type, body, fetched_at)
            VALUES (?, ?, ?, ?, ?)
        `, bucket, entry.Path, entry.ContentType, entry.Body, entry.FetchedAt)
		if err != nil {
			return fmt.Errorf("store %q in bucket %q: %w", entry.Path, bucket, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bucket %q: %w", bucket, err)
	}
	return nil
}

// Get returns the cached entry for the path within the bucket.
func (r *SQLiteCacheRepository) Get(ctx context.Context, bucket, path string) (*CacheEntry, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT path, content_type, body, fetched_at FROM cache_entries
        WHERE bucket = ? AND path = ?
    `, bucket, path)

	var entry CacheEntry
	if err := row.Scan(&entry.Path, &entry.ContentType, &entry.Body, &entry.FetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("query cache entry %q: %w", path, err)
	}

	return &entry, nil
}

// Buckets enumerates every bucket name currently present.
func (r *SQLiteCacheRepository) Buckets(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT bucket FROM cache_entries ORDER BY bucket`)
	if err != nil {
		return nil, fmt.Errorf("list cache buckets: %w", err)
	}
	defer rows.Close()

	var buckets []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan bucket name: %w", err)
		}
		buckets = append(buckets, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate buckets: %w", err)
	}

	return buckets, nil
}

// DeleteBucket removes every entry in the bucket.
func (r *SQLiteCacheRepository) DeleteBucket(ctx context.Context, bucket string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE bucket = ?`, bucket); err != nil {
		return fmt.Errorf("delete bucket %q: %w", bucket, err)
	}
	return nil
}
