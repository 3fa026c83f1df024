package places

import (
	"context"
	"errors"
	"time"

	"github.com/tcadundee/hobby-finder/api/internal/entity"
)

const defaultRetryDelay = 400 * time.Millisecond

// Gateway wraps a Source and retries while the provider is still
// initializing. Readiness is never surfaced as an error; the retry loop runs
// until the source answers or the caller's context is cancelled.
type Gateway struct {
	source     Source
	retryDelay time.Duration
}

// NewGateway wraps the source with the standard 400 ms readiness retry.
func NewGateway(source Source) *Gateway {
	return &Gateway{source: source, retryDelay: defaultRetryDelay}
}

// NearbySearch forwards the query, retrying on ErrNotReady.
func (g *Gateway) NearbySearch(ctx context.Context, q NearbyQuery) ([]entity.Place, error) {
	var result []entity.Place
	err := g.retry(ctx, func() error {
		var callErr error
		result, callErr = g.source.NearbySearch(ctx, q)
		return callErr
	})
	return result, err
}

// Details forwards the detail lookup, retrying on ErrNotReady.
func (g *Gateway) Details(ctx context.Context, placeID string, fields []string) (*entity.PlaceDetail, error) {
	var result *entity.PlaceDetail
	err := g.retry(ctx, func() error {
		var callErr error
		result, callErr = g.source.Details(ctx, placeID, fields)
		return callErr
	})
	return result, err
}

func (g *Gateway) retry(ctx context.Context, call func() error) error {
	delay := g.retryDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}

	for {
		err := call()
		if !errors.Is(err, ErrNotReady) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}
