package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tcadundee/hobby-finder/api/internal/entity"
	"github.com/tcadundee/hobby-finder/api/internal/geo"
	"github.com/tcadundee/hobby-finder/api/internal/places"
	"github.com/tcadundee/hobby-finder/api/internal/repository"
)

// City mode always searches a fixed radius, whatever the distance setting.
const cityRadiusKm = 5.0

var (
	// ErrNoKeyword means no search term was supplied and none is remembered.
	ErrNoKeyword = errors.New("no search term selected")
	// ErrSuperseded means the same user started a newer search before this
	// one finished; its results must be discarded rather than overwrite
	// fresher state.
	ErrSuperseded = errors.New("search superseded by a newer request")
)

// StatusNoResults is the user-visible status for an empty or failed provider query.
const StatusNoResults = "No results found."

// PlaceFinder is the slice of the gateway the pipeline needs.
type PlaceFinder interface {
	NearbySearch(ctx context.Context, q places.NearbyQuery) ([]entity.Place, error)
	Details(ctx context.Context, placeID string, fields []string) (*entity.PlaceDetail, error)
}

// SearchInput carries one search invocation.
type SearchInput struct {
	UserID  string
	Keyword string
	Resolve ResolveInput
}

// SearchResult is the ordered, filtered output of one pipeline run.
type SearchResult struct {
	Keyword string         `json:"keyword"`
	Origin  entity.Origin  `json:"origin"`
	Places  []entity.Place `json:"places"`
	Status  string         `json:"status"`
	Seq     uint64         `json:"-"`
}

// SearchService runs the result pipeline: origin resolution, provider query,
// distance annotation, filtering, detail enrichment and sorting.
type SearchService struct {
	finder   PlaceFinder
	resolver OriginResolver
	settings *SettingsService
	recents  *RecentsService
	state    repository.StateRepository

	mu   sync.Mutex
	runs map[string]*atomic.Uint64
}

// NewSearchService constructs a SearchService.
func NewSearchService(finder PlaceFinder, resolver OriginResolver, settings *SettingsService, recents *RecentsService, state repository.StateRepository) *SearchService {
	return &SearchService{
		finder:   finder,
		resolver: resolver,
		settings: settings,
		recents:  recents,
		state:    state,
		runs:     map[string]*atomic.Uint64{},
	}
}

// runCounter returns the supersession counter for the user. Runs only
// supersede other runs by the same user; anonymous requests share the guest
// counter.
func (s *SearchService) runCounter(userID string) *atomic.Uint64 {
	if userID == "" {
		userID = repository.GuestUserID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	counter, ok := s.runs[userID]
	if !ok {
		counter = &atomic.Uint64{}
		s.runs[userID] = counter
	}
	return counter
}

// Search executes one pipeline run. Stages run strictly in order: distance
// annotation, rating filter, accessibility filter, sort. The accessibility
// fan-out is the only concurrent stage and completes fully before sorting.
func (s *SearchService) Search(ctx context.Context, in SearchInput) (SearchResult, error) {
	counter := s.runCounter(in.UserID)
	seq := counter.Add(1)

	settings, err := s.settings.Load(ctx, in.UserID)
	if err != nil {
		return SearchResult{}, err
	}

	keyword, err := s.resolveKeyword(ctx, in.Keyword)
	if err != nil {
		return SearchResult{}, err
	}
	if err := s.state.Set(ctx, keyLastKeyword, keyword); err != nil {
		return SearchResult{}, err
	}
	if err := s.recents.Push(ctx, in.UserID, keyword); err != nil {
		return SearchResult{}, err
	}

	resolve := in.Resolve
	resolve.Mode = settings.Mode
	origin, err := s.resolver.Resolve(ctx, resolve)
	if err != nil {
		return SearchResult{}, err
	}

	radiusKm := settings.SearchDistanceKm
	if settings.Mode == entity.ModeCity {
		radiusKm = cityRadiusKm
	}

	batch, err := s.finder.NearbySearch(ctx, places.NearbyQuery{
		Origin:       origin.Coordinates,
		RadiusMeters: int(radiusKm * 1000),
		Keyword:      keyword,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return SearchResult{}, err
		}
		// Provider failure and zero results both read as "no results".
		return SearchResult{Keyword: keyword, Origin: origin, Places: []entity.Place{}, Status: StatusNoResults, Seq: seq}, nil
	}
	if len(batch) == 0 {
		return SearchResult{Keyword: keyword, Origin: origin, Places: []entity.Place{}, Status: StatusNoResults, Seq: seq}, nil
	}

	for i := range batch {
		batch[i].DistanceKm = geo.DistanceKm(origin.Coordinates, batch[i].Location)
	}

	filtered := filterByRating(batch, settings.MinRating)

	if settings.WheelchairOnly {
		filtered, err = s.filterAccessible(ctx, filtered)
		if err != nil {
			return SearchResult{}, err
		}
	}

	sortPlaces(filtered, settings.SortOption)

	if counter.Load() != seq {
		return SearchResult{}, ErrSuperseded
	}

	return SearchResult{
		Keyword: keyword,
		Origin:  origin,
		Places:  filtered,
		Status:  fmt.Sprintf("Found %d results.", len(filtered)),
		Seq:     seq,
	}, nil
}

func (s *SearchService) resolveKeyword(ctx context.Context, keyword string) (string, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword != "" {
		return keyword, nil
	}

	stored, ok, err := s.state.Get(ctx, keyLastKeyword)
	if err != nil {
		return "", err
	}
	if !ok || strings.TrimSpace(stored) == "" {
		return "", ErrNoKeyword
	}
	return stored, nil
}

// filterByRating keeps candidates whose rating (missing treated as 0) is at
// least the threshold. The boundary is inclusive.
func filterByRating(batch []entity.Place, minRating float64) []entity.Place {
	filtered := make([]entity.Place, 0, len(batch))
	for _, place := range batch {
		if place.RatingOrZero() >= minRating {
			filtered = append(filtered, place)
		}
	}
	return filtered
}

// filterAccessible issues every detail lookup concurrently and waits for all
// of them to settle. A candidate is dropped only when its flag resolves to
// no or the lookup fails; unknown is kept.
func (s *SearchService) filterAccessible(ctx context.Context, batch []entity.Place) ([]entity.Place, error) {
	type outcome struct {
		state  entity.Accessibility
		failed bool
	}

	outcomes := make([]outcome, len(batch))
	g, gctx := errgroup.WithContext(ctx)

	for i, place := range batch {
		i, place := i, place
		g.Go(func() error {
			detail, err := s.finder.Details(gctx, place.PlaceID, places.AccessibilityFields)
			if err != nil {
				outcomes[i] = outcome{failed: true}
				return nil
			}
			outcomes[i] = outcome{state: detail.AccessibilityState()}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kept := make([]entity.Place, 0, len(batch))
	for i, place := range batch {
		if outcomes[i].failed || outcomes[i].state == entity.AccessibilityNo {
			continue
		}
		place.Accessibility = outcomes[i].state
		kept = append(kept, place)
	}
	return kept, nil
}

// sortPlaces orders the batch. All sorts are stable so equal keys keep the
// provider's original order.
func sortPlaces(batch []entity.Place, option entity.SortOption) {
	switch option {
	case entity.SortRating:
		sort.SliceStable(batch, func(i, j int) bool {
			return batch[i].RatingOrZero() > batch[j].RatingOrZero()
		})
	case entity.SortAlpha:
		collator := collate.New(language.English)
		sort.SliceStable(batch, func(i, j int) bool {
			return collator.CompareString(batch[i].Name, batch[j].Name) < 0
		})
	default:
		sort.SliceStable(batch, func(i, j int) bool {
			return batch[i].DistanceKm < batch[j].DistanceKm
		})
	}
}
