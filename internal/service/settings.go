package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tcadundee/hobby-finder/api/internal/entity"
	"github.com/tcadundee/hobby-finder/api/internal/repository"
)

// Persisted per-user state keys, namespaced as <userId>:<key>.
const (
	keySearchMode     = "searchMode"
	keySortOption     = "sortOption"
	keyMinRating      = "minRating"
	keyWheelchairOnly = "wheelchairOnly"
	keySearchDistance = "searchDistance"
	keyRecentList     = "recentHobbies"
	keyProfile        = "userProfile"
)

// Un-namespaced global keys shared across users.
const (
	keyLastCity       = "hf_last_city"
	keyLastCityCoords = "hf_last_city_coords"
	keyLastKeyword    = "hf_last_keyword"
	keyCustomHobbies  = "customHobbies"
	keyFavourites     = "favourites"
	keyRandomHobbies  = "randomHobbiesCache"
)

// ValidationError indicates that a user-supplied settings value is invalid.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Message
}

// SettingsService loads and saves per-user search configuration. Every read
// supplies an explicit default, so absence of a key is never an error.
type SettingsService struct {
	state repository.StateRepository
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(state repository.StateRepository) *SettingsService {
	return &SettingsService{state: state}
}

// Load returns the stored settings for the user, defaulting any absent field.
func (s *SettingsService) Load(ctx context.Context, userID string) (entity.SearchSettings, error) {
	settings := entity.DefaultSearchSettings()

	if raw, ok, err := s.get(ctx, userID, keySearchMode); err != nil {
		return settings, err
	} else if ok && entity.SearchMode(raw).Valid() {
		settings.Mode = entity.SearchMode(raw)
	}

	if raw, ok, err := s.get(ctx, userID, keySortOption); err != nil {
		return settings, err
	} else if ok && entity.SortOption(raw).Valid() {
		settings.SortOption = entity.SortOption(raw)
	}

	if raw, ok, err := s.get(ctx, userID, keyMinRating); err != nil {
		return settings, err
	} else if ok {
		if value, perr := strconv.ParseFloat(raw, 64); perr == nil {
			settings.MinRating = value
		}
	}

	if raw, ok, err := s.get(ctx, userID, keyWheelchairOnly); err != nil {
		return settings, err
	} else if ok {
		settings.WheelchairOnly = raw == "true"
	}

	if raw, ok, err := s.get(ctx, userID, keySearchDistance); err != nil {
		return settings, err
	} else if ok {
		if value, perr := strconv.ParseFloat(raw, 64); perr == nil && value > 0 {
			settings.SearchDistanceKm = value
		}
	}

	return settings, nil
}

// Save validates and persists the settings. Each key is a full-value
// overwrite; concurrent writers resolve last-writer-wins.
func (s *SettingsService) Save(ctx context.Context, userID string, settings entity.SearchSettings) error {
	if !settings.Mode.Valid() {
		return ValidationError{Message: fmt.Sprintf("unsupported search mode %q", settings.Mode)}
	}
	if !settings.SortOption.Valid() {
		return ValidationError{Message: fmt.Sprintf("unsupported sort option %q", settings.SortOption)}
	}
	if settings.MinRating < 0 || settings.MinRating > 5 {
		return ValidationError{Message: "minimum rating must be between 0 and 5"}
	}
	if settings.SearchDistanceKm <= 0 {
		return ValidationError{Message: "search distance must be positive"}
	}

	values := map[string]string{
		keySearchMode:     string(settings.Mode),
		keySortOption:     string(settings.SortOption),
		keyMinRating:      strconv.FormatFloat(settings.MinRating, 'f', -1, 64),
		keyWheelchairOnly: strconv.FormatBool(settings.WheelchairOnly),
		keySearchDistance: strconv.FormatFloat(settings.SearchDistanceKm, 'f', -1, 64),
	}
	for key, value := range values {
		if err := s.state.Set(ctx, repository.UserKey(userID, key), value); err != nil {
			return err
		}
	}
	return nil
}

// LoadProfile returns the stored profile, empty when absent.
func (s *SettingsService) LoadProfile(ctx context.Context, userID string) (entity.Profile, error) {
	var profile entity.Profile

	raw, ok, err := s.get(ctx, userID, keyProfile)
	if err != nil {
		return profile, err
	}
	if ok {
		if uerr := json.Unmarshal([]byte(raw), &profile); uerr != nil {
			return entity.Profile{}, nil
		}
	}

	return profile, nil
}

// SaveProfile persists the profile as a single JSON value.
func (s *SettingsService) SaveProfile(ctx context.Context, userID string, profile entity.Profile) error {
	encoded, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return s.state.Set(ctx, repository.UserKey(userID, keyProfile), string(encoded))
}

func (s *SettingsService) get(ctx context.Context, userID, key string) (string, bool, error) {
	return s.state.Get(ctx, repository.UserKey(userID, key))
}
