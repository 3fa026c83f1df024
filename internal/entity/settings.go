package entity

// SearchMode selects where the search origin comes from.
type SearchMode string

const (
	ModeLocation SearchMode = "location"
	ModeCity     SearchMode = "city"
)

// Valid reports whether the mode is one of the supported values.
func (m SearchMode) Valid() bool {
	return m == ModeLocation || m == ModeCity
}

// SortOption selects the ordering of the final result set.
type SortOption string

const (
	SortDistance SortOption = "distance"
	SortRating   SortOption = "rating"
	SortAlpha    SortOption = "alpha"
)

// Valid reports whether the sort option is one of the supported values.
func (s SortOption) Valid() bool {
	return s == SortDistance || s == SortRating || s == SortAlpha
}

// SearchSettings is the per-user search configuration. SearchDistanceKm only
// applies in location mode; city mode always searches a fixed 5 km radius.
type SearchSettings struct {
	Mode             SearchMode `json:"search_mode"`
	SortOption       SortOption `json:"sort_option"`
	MinRating        float64    `json:"min_rating"`
	WheelchairOnly   bool       `json:"wheelchair_only"`
	SearchDistanceKm float64    `json:"search_distance_km"`
}

// DefaultSearchSettings returns the settings used when nothing is persisted.
func DefaultSearchSettings() SearchSettings {
	return SearchSettings{
		Mode:             ModeLocation,
		SortOption:       SortDistance,
		MinRating:        0,
		WheelchairOnly:   false,
		SearchDistanceKm: 5,
	}
}

// Profile is the user-editable display profile.
type Profile struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}
