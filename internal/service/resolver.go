package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tcadundee/hobby-finder/api/internal/entity"
	"github.com/tcadundee/hobby-finder/api/internal/places"
	"github.com/tcadundee/hobby-finder/api/internal/repository"
)

const (
	positionTimeout = 10 * time.Second
	positionMaxAge  = 5 * time.Minute
)

var (
	// ErrNoOrigin means live positioning failed and no remembered city exists.
	ErrNoOrigin = errors.New("location denied or unavailable")
	// ErrNoCity means city mode was requested with no city to resolve.
	ErrNoCity = errors.New("no city entered")
	// ErrCityNotFound means geocoding resolved nothing for the city.
	ErrCityNotFound = errors.New("city not found")
)

// PositionOptions bound a live position request.
type PositionOptions struct {
	Timeout    time.Duration
	MaximumAge time.Duration
}

// PositionSource supplies a live device fix. Sources backed by real hardware
// honour MaximumAge for cached fixes; request-supplied sources return at once.
type PositionSource interface {
	CurrentPosition(ctx context.Context, opts PositionOptions) (entity.Coordinates, error)
}

// CitySelection is an autocomplete pick that already carries geometry.
type CitySelection struct {
	Name     string
	Location entity.Coordinates
}

// ResolveInput carries everything one origin resolution may need.
type ResolveInput struct {
	Mode     entity.SearchMode
	Position PositionSource
	City     string
	Selected *CitySelection
}

// OriginResolver produces the origin for one search.
type OriginResolver interface {
	Resolve(ctx context.Context, in ResolveInput) (entity.Origin, error)
}

// LocationResolver resolves a search origin from live positioning or a
// remembered city, with the documented fallback order.
type LocationResolver struct {
	state    repository.StateRepository
	geocoder places.Geocoder
}

// NewLocationResolver constructs a LocationResolver.
func NewLocationResolver(state repository.StateRepository, geocoder places.Geocoder) *LocationResolver {
	return &LocationResolver{state: state, geocoder: geocoder}
}

// Resolve obtains the origin for the given mode.
func (r *LocationResolver) Resolve(ctx context.Context, in ResolveInput) (entity.Origin, error) {
	if in.Mode == entity.ModeCity {
		return r.resolveCity(ctx, in)
	}
	return r.resolveLive(ctx, in)
}

func (r *LocationResolver) resolveLive(ctx context.Context, in ResolveInput) (entity.Origin, error) {
	if in.Position != nil {
		posCtx, cancel := context.WithTimeout(ctx, positionTimeout)
		coords, err := in.Position.CurrentPosition(posCtx, PositionOptions{
			Timeout:    positionTimeout,
			MaximumAge: positionMaxAge,
		})
		cancel()
		if err == nil {
			return entity.Origin{Coordinates: coords, Source: entity.OriginLive}, nil
		}
	}

	// Permission denied, timed out or unsupported: fall back to the city the
	// user last searched from.
	coords, ok, err := r.rememberedCoords(ctx)
	if err != nil {
		return entity.Origin{}, err
	}
	if !ok {
		return entity.Origin{}, ErrNoOrigin
	}
	return entity.Origin{Coordinates: coords, Source: entity.OriginRememberedCity}, nil
}

func (r *LocationResolver) resolveCity(ctx context.Context, in ResolveInput) (entity.Origin, error) {
	if in.Selected != nil {
		if err := r.rememberCity(ctx, in.Selected.Name, in.Selected.Location); err != nil {
			return entity.Origin{}, err
		}
		return entity.Origin{Coordinates: in.Selected.Location, Source: entity.OriginRememberedCity}, nil
	}

	city := strings.TrimSpace(in.City)
	if city == "" {
		stored, ok, err := r.state.Get(ctx, keyLastCity)
		if err != nil {
			return entity.Origin{}, err
		}
		if ok {
			city = stored
		}
	}
	if city == "" {
		return entity.Origin{}, ErrNoCity
	}

	// A geocoder miss and a geocoder failure read the same to the user: the
	// city could not be resolved.
	coords, err := r.geocoder.Geocode(ctx, city)
	if err != nil {
		return entity.Origin{}, ErrCityNotFound
	}

	if err := r.rememberCity(ctx, city, coords); err != nil {
		return entity.Origin{}, err
	}
	return entity.Origin{Coordinates: coords, Source: entity.OriginRememberedCity}, nil
}

// rememberCity overwrites the persisted city on every successful resolution,
// whatever the active mode; location mode reads it back as its fallback.
func (r *LocationResolver) rememberCity(ctx context.Context, name string, coords entity.Coordinates) error {
	if err := r.state.Set(ctx, keyLastCity, name); err != nil {
		return err
	}
	encoded, err := json.Marshal(coords)
	if err != nil {
		return fmt.Errorf("encode city coordinates: %w", err)
	}
	return r.state.Set(ctx, keyLastCityCoords, string(encoded))
}

func (r *LocationResolver) rememberedCoords(ctx context.Context) (entity.Coordinates, bool, error) {
	raw, ok, err := r.state.Get(ctx, keyLastCityCoords)
	if err != nil || !ok {
		return entity.Coordinates{}, false, err
	}

	var coords entity.Coordinates
	if err := json.Unmarshal([]byte(raw), &coords); err != nil {
		return entity.Coordinates{}, false, nil
	}
	return coords, true, nil
}
