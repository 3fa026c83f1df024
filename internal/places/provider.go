// Package places defines the external place-search and geocoding collaborators
// and the gateway that shields the pipeline from provider initialization.
package places

import (
	"context"
	"errors"

	"github.com/tcadundee/hobby-finder/api/internal/entity"
)

var (
	// ErrNotReady signals that the provider has not finished initializing.
	// The gateway retries on it; it is never surfaced to the user.
	ErrNotReady = errors.New("place source not ready")
	// ErrNoResults is returned when the provider has nothing for the
	// keyword/radius combination.
	ErrNoResults = errors.New("no places found")
	// ErrPlaceNotFound is returned when a detail lookup matches nothing.
	ErrPlaceNotFound = errors.New("place not found")
	// ErrNoMatch is returned when geocoding resolves no location.
	ErrNoMatch = errors.New("no geocoding match")
)

// NearbyQuery describes one radius search.
type NearbyQuery struct {
	Origin       entity.Coordinates
	RadiusMeters int
	Keyword      string
}

// Source is the external place-search provider.
type Source interface {
	NearbySearch(ctx context.Context, q NearbyQuery) ([]entity.Place, error)
	Details(ctx context.Context, placeID string, fields []string) (*entity.PlaceDetail, error)
}

// Geocoder resolves a free-text location to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (entity.Coordinates, error)
}

// Detail field names understood by the provider.
const (
	FieldWheelchair = "wheelchair_accessible_entrance"
	FieldPhone      = "formatted_phone_number"
	FieldWebsite    = "website"
	FieldHours      = "opening_hours"
	FieldSummary    = "editorial_summary"
)

// AccessibilityFields is the minimal field set for the wheelchair filter.
var AccessibilityFields = []string{FieldWheelchair}

// DetailFields is the full field set for the place detail card.
var DetailFields = []string{FieldPhone, FieldWebsite, FieldHours, FieldWheelchair, FieldSummary}
