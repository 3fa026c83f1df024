package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"

	"github.com/tcadundee/hobby-finder/api/internal/entity"
)

const (
	defaultPlacesBaseURL  = "https://maps.googleapis.com/maps/api/place"
	defaultGeocodeBaseURL = "https://maps.googleapis.com/maps/api/geocode"

	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

// GoogleSource implements Source against the Google Places web API.
type GoogleSource struct {
	client  *http.Client
	baseURL string
	apiKey  string
	region  string
}

// NewGoogleSource builds a place source. An empty baseURL selects the real API.
func NewGoogleSource(client *http.Client, baseURL, apiKey string) *GoogleSource {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if baseURL == "" {
		baseURL = defaultPlacesBaseURL
	}
	return &GoogleSource{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		region:  "GB",
	}
}

type googleLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type googleGeometry struct {
	Location googleLocation `json:"location"`
}

type googlePhoto struct {
	PhotoReference string `json:"photo_reference"`
}

type googlePlace struct {
	PlaceID  string         `json:"place_id"`
	Name     string         `json:"name"`
	Geometry googleGeometry `json:"geometry"`
	Rating   *float64       `json:"rating,omitempty"`
	Vicinity *string        `json:"vicinity,omitempty"`
	Photos   []googlePhoto  `json:"photos,omitempty"`
}

type nearbyResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Results      []googlePlace `json:"results"`
}

// NearbySearch performs a keyword radius search.
func (s *GoogleSource) NearbySearch(ctx context.Context, q NearbyQuery) ([]entity.Place, error) {
	if s.apiKey == "" {
		return nil, ErrNotReady
	}

	params := url.Values{}
	params.Set("location", formatLatLng(q.Origin))
	params.Set("radius", strconv.Itoa(q.RadiusMeters))
	params.Set("keyword", q.Keyword)
	params.Set("key", s.apiKey)

	var resp nearbyResponse
	if err := s.getJSON(ctx, "/nearbysearch/json?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	switch resp.Status {
	case statusOK:
	case statusZeroResults:
		return nil, ErrNoResults
	default:
		return nil, fmt.Errorf("places status %s: %s", resp.Status, resp.ErrorMessage)
	}
	if len(resp.Results) == 0 {
		return nil, ErrNoResults
	}

	results := make([]entity.Place, 0, len(resp.Results))
	for _, raw := range resp.Results {
		place := entity.Place{
			PlaceID:       raw.PlaceID,
			Name:          raw.Name,
			Location:      entity.Coordinates{Lat: raw.Geometry.Location.Lat, Lng: raw.Geometry.Location.Lng},
			Rating:        raw.Rating,
			Vicinity:      raw.Vicinity,
			Accessibility: entity.AccessibilityUnknown,
		}
		if len(raw.Photos) > 0 && raw.Photos[0].PhotoReference != "" {
			ref := raw.Photos[0].PhotoReference
			place.PhotoReference = &ref
		}
		results = append(results, place)
	}

	return results, nil
}

type googleOpeningHours struct {
	WeekdayText []string `json:"weekday_text"`
}

type googleSummary struct {
	Overview string `json:"overview"`
}

type googleDetail struct {
	Phone        *string             `json:"formatted_phone_number,omitempty"`
	Website      *string             `json:"website,omitempty"`
	OpeningHours *googleOpeningHours `json:"opening_hours,omitempty"`
	Summary      *googleSummary      `json:"editorial_summary,omitempty"`
	Wheelchair   *bool               `json:"wheelchair_accessible_entrance,omitempty"`
}

type detailsResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Result       *googleDetail `json:"result"`
}

// Details fetches the detail record for a single place.
func (s *GoogleSource) Details(ctx context.Context, placeID string, fields []string) (*entity.PlaceDetail, error) {
	if s.apiKey == "" {
		return nil, ErrNotReady
	}

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", strings.Join(fields, ","))
	params.Set("key", s.apiKey)

	var resp detailsResponse
	if err := s.getJSON(ctx, "/details/json?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	switch {
	case resp.Status == statusZeroResults || resp.Status == "NOT_FOUND":
		return nil, ErrPlaceNotFound
	case resp.Status != statusOK:
		return nil, fmt.Errorf("place details status %s: %s", resp.Status, resp.ErrorMessage)
	case resp.Result == nil:
		return nil, ErrPlaceNotFound
	}

	detail := &entity.PlaceDetail{
		PlaceID:              placeID,
		Phone:                normalizePhone(resp.Result.Phone, s.region),
		Website:              resp.Result.Website,
		Summary:              nil,
		WheelchairAccessible: resp.Result.Wheelchair,
	}
	if resp.Result.OpeningHours != nil {
		detail.WeekdayHours = resp.Result.OpeningHours.WeekdayText
	}
	if resp.Result.Summary != nil && resp.Result.Summary.Overview != "" {
		overview := resp.Result.Summary.Overview
		detail.Summary = &overview
	}

	return detail, nil
}

func (s *GoogleSource) getJSON(ctx context.Context, pathAndQuery string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+pathAndQuery, nil)
	if err != nil {
		return fmt.Errorf("create provider request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("provider returned HTTP %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode provider response: %w", err)
	}
	return nil
}

// normalizePhone formats the provider phone number internationally; an
// unparseable number is passed through untouched.
func normalizePhone(raw *string, region string) *string {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return raw
	}
	parsed, err := phonenumbers.Parse(*raw, region)
	if err != nil {
		return raw
	}
	formatted := phonenumbers.Format(parsed, phonenumbers.INTERNATIONAL)
	return &formatted
}

// GoogleGeocoder implements Geocoder against the Google Geocoding web API.
type GoogleGeocoder struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewGoogleGeocoder builds a geocoder. An empty baseURL selects the real API.
func NewGoogleGeocoder(client *http.Client, baseURL, apiKey string) *GoogleGeocoder {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if baseURL == "" {
		baseURL = defaultGeocodeBaseURL
	}
	return &GoogleGeocoder{client: client, baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry googleGeometry `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a free-text address to coordinates.
func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (entity.Coordinates, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/json?"+params.Encode(), nil)
	if err != nil {
		return entity.Coordinates{}, fmt.Errorf("create geocode request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return entity.Coordinates{}, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return entity.Coordinates{}, fmt.Errorf("geocoder returned HTTP %d", resp.StatusCode)
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return entity.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if decoded.Status != statusOK || len(decoded.Results) == 0 {
		return entity.Coordinates{}, ErrNoMatch
	}

	loc := decoded.Results[0].Geometry.Location
	return entity.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
}

func formatLatLng(c entity.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}
