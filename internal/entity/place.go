package entity

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// OriginSource records how a search origin was obtained.
type OriginSource string

const (
	OriginLive           OriginSource = "live"
	OriginRememberedCity OriginSource = "remembered-city"
)

// Origin is the resolved centre of a radius search.
type Origin struct {
	Coordinates
	Source OriginSource `json:"source"`
}

// Accessibility is the tri-state wheelchair flag attached to a place.
// Unknown is distinct from No: a place the provider has no data for is
// never treated as inaccessible.
type Accessibility string

const (
	AccessibilityUnknown Accessibility = "unknown"
	AccessibilityYes     Accessibility = "yes"
	AccessibilityNo      Accessibility = "no"
)

// AccessibilityFromFlag maps the provider's nullable boolean onto the tri-state.
func AccessibilityFromFlag(flag *bool) Accessibility {
	switch {
	case flag == nil:
		return AccessibilityUnknown
	case *flag:
		return AccessibilityYes
	default:
		return AccessibilityNo
	}
}

// Place is a single search result returned by the pipeline.
type Place struct {
	PlaceID        string        `json:"place_id"`
	Name           string        `json:"name"`
	Location       Coordinates   `json:"location"`
	Rating         *float64      `json:"rating,omitempty"`
	Vicinity       *string       `json:"vicinity,omitempty"`
	PhotoReference *string       `json:"photo_reference,omitempty"`
	DistanceKm     float64       `json:"distance_km"`
	Accessibility  Accessibility `json:"accessibility"`
}

// RatingOrZero treats a missing rating as 0 for filtering and sorting.
func (p Place) RatingOrZero() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// PlaceDetail is the on-demand detail record for a single place.
type PlaceDetail struct {
	PlaceID              string   `json:"place_id"`
	Phone                *string  `json:"phone,omitempty"`
	Website              *string  `json:"website,omitempty"`
	WeekdayHours         []string `json:"weekday_hours,omitempty"`
	Summary              *string  `json:"summary,omitempty"`
	WheelchairAccessible *bool    `json:"wheelchair_accessible,omitempty"`
}

// AccessibilityState reports the tri-state accessibility of the detail record.
func (d PlaceDetail) AccessibilityState() Accessibility {
	return AccessibilityFromFlag(d.WheelchairAccessible)
}

// FavouritePlace is the durable subset of a Place saved to favourites.
type FavouritePlace struct {
	PlaceID    string   `json:"place_id"`
	Name       string   `json:"name"`
	Vicinity   *string  `json:"vicinity,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
	DistanceKm float64  `json:"distance_km"`
	PhotoURL   string   `json:"photo_url"`
}
