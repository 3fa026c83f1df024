package cache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tcadundee/hobby-finder/api/internal/repository"
)

// Fetcher retrieves a resource from the network origin.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (*repository.CacheEntry, error)
}

// HTTPFetcher fetches resources from the upstream asset origin.
type HTTPFetcher struct {
	client  *http.Client
	baseURL string
}

// NewHTTPFetcher builds a fetcher for the given origin base URL.
func NewHTTPFetcher(client *http.Client, baseURL string) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPFetcher{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// Fetch performs a live GET against the origin.
func (f *HTTPFetcher) Fetch(ctx context.Context, path string) (*repository.CacheEntry, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create fetch request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch %s: HTTP %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &repository.CacheEntry{
		Path:        path,
		ContentType: contentType,
		Body:        body,
		FetchedAt:   time.Now().UTC(),
	}, nil
}
