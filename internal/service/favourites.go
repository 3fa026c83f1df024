package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tcadundee/hobby-finder/api/internal/entity"
	"github.com/tcadundee/hobby-finder/api/internal/repository"
)

// FavouritesService maintains the shared favourites list, deduplicated by
// place identifier. The list is a global, not per-user state.
type FavouritesService struct {
	state repository.StateRepository
}

// NewFavouritesService constructs a FavouritesService.
func NewFavouritesService(state repository.StateRepository) *FavouritesService {
	return &FavouritesService{state: state}
}

// List returns every saved favourite.
func (s *FavouritesService) List(ctx context.Context) ([]entity.FavouritePlace, error) {
	raw, ok, err := s.state.Get(ctx, keyFavourites)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []entity.FavouritePlace{}, nil
	}

	var favourites []entity.FavouritePlace
	if err := json.Unmarshal([]byte(raw), &favourites); err != nil {
		return []entity.FavouritePlace{}, nil
	}
	return favourites, nil
}

// Add appends the place unless it is already saved; it reports whether the
// list changed.
func (s *FavouritesService) Add(ctx context.Context, place entity.FavouritePlace) (bool, error) {
	if place.PlaceID == "" {
		return false, ValidationError{Message: "place id is required"}
	}

	favourites, err := s.List(ctx)
	if err != nil {
		return false, err
	}

	for _, existing := range favourites {
		if existing.PlaceID == place.PlaceID {
			return false, nil
		}
	}

	favourites = append(favourites, place)
	if err := s.save(ctx, favourites); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes the favourite with the given place id; it reports whether
// anything was removed.
func (s *FavouritesService) Remove(ctx context.Context, placeID string) (bool, error) {
	favourites, err := s.List(ctx)
	if err != nil {
		return false, err
	}

	kept := favourites[:0]
	removed := false
	for _, existing := range favourites {
		if existing.PlaceID == placeID {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	if !removed {
		return false, nil
	}

	if err := s.save(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FavouritesService) save(ctx context.Context, favourites []entity.FavouritePlace) error {
	encoded, err := json.Marshal(favourites)
	if err != nil {
		return fmt.Errorf("encode favourites: %w", err)
	}
	return s.state.Set(ctx, keyFavourites, string(encoded))
}
