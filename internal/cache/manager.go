package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tcadundee/hobby-finder/api/internal/repository"
)

// Request describes one intercepted resource request. Document marks
// top-level navigations, which are eligible for the root-document fallback.
type Request struct {
	Path     string
	Document bool
}

// Response is the resource handed back to the caller.
type Response struct {
	ContentType string
	Body        []byte
	FromCache   bool
}

// Manager is the offline cache state machine: install populates the current
// version's bucket, activate evicts every other version, and Serve answers
// requests cache-first with network fallback.
type Manager struct {
	manifest Manifest
	store    repository.CacheRepository
	fetcher  Fetcher
}

// NewManager constructs a Manager for the manifest.
func NewManager(manifest Manifest, store repository.CacheRepository, fetcher Fetcher) *Manager {
	return &Manager{manifest: manifest, store: store, fetcher: fetcher}
}

// Manifest returns the manifest the manager was built with.
func (m *Manager) Manifest() Manifest {
	return m.manifest
}

// Install fetches every manifest path and stores the bucket. Population is
// all-or-nothing: one failed fetch fails the install and nothing is written.
func (m *Manager) Install(ctx context.Context) error {
	entries := make([]repository.CacheEntry, 0, len(m.manifest.Paths))
	for _, path := range m.manifest.Paths {
		entry, err := m.fetcher.Fetch(ctx, path)
		if err != nil {
			return fmt.Errorf("install %s: %w", m.manifest.BucketName(), err)
		}
		entry.Path = normalizePath(path)
		entries = append(entries, *entry)
	}

	if err := m.store.PutBucket(ctx, m.manifest.BucketName(), entries); err != nil {
		return fmt.Errorf("install %s: %w", m.manifest.BucketName(), err)
	}
	return nil
}

// Activate deletes every bucket whose name is not the current version's.
// Version-name mismatch is the only eviction mechanism; it takes effect for
// all subsequent requests immediately.
func (m *Manager) Activate(ctx context.Context) error {
	buckets, err := m.store.Buckets(ctx)
	if err != nil {
		return fmt.Errorf("activate %s: %w", m.manifest.BucketName(), err)
	}

	current := m.manifest.BucketName()
	for _, bucket := range buckets {
		if bucket == current {
			continue
		}
		if err := m.store.DeleteBucket(ctx, bucket); err != nil {
			return fmt.Errorf("evict bucket %s: %w", bucket, err)
		}
	}
	return nil
}

// Serve answers one resource request: cached entry first, then live fetch,
// then — for document requests only — the cached root document. A
// non-document request with no cache entry surfaces the network failure
// unchanged.
func (m *Manager) Serve(ctx context.Context, req Request) (*Response, error) {
	bucket := m.manifest.BucketName()

	if entry, err := m.store.Get(ctx, bucket, normalizePath(req.Path)); err == nil {
		return &Response{ContentType: entry.ContentType, Body: entry.Body, FromCache: true}, nil
	} else if !errors.Is(err, repository.ErrCacheMiss) {
		return nil, err
	}

	live, fetchErr := m.fetcher.Fetch(ctx, req.Path)
	if fetchErr == nil {
		return &Response{ContentType: live.ContentType, Body: live.Body}, nil
	}

	if req.Document {
		if entry, err := m.store.Get(ctx, bucket, normalizePath(m.manifest.RootDocument)); err == nil {
			return &Response{ContentType: entry.ContentType, Body: entry.Body, FromCache: true}, nil
		}
	}

	return nil, fetchErr
}

// normalizePath strips the query and fragment so a request matches its cached
// key regardless of cache busters.
func normalizePath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		path = "/"
	}
	return path
}
