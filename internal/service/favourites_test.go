package service

import (
	"context"
	"testing"

	"github.com/tcadundee/hobby-finder/api/internal/entity"
)

func TestFavourites_AddDeduplicates(t *testing.T) {
	svc := NewFavouritesService(newMemState())
	ctx := context.Background()

	place := entity.FavouritePlace{PlaceID: "p1", Name: "Olympia Pool"}

	added, err := svc.Add(ctx, place)
	if err != nil || !added {
		t.Fatalf("expected first add to succeed, added=%v err=%v", added, err)
	}

	added, err = svc.Add(ctx, place)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added {
		t.Fatalf("expected duplicate add to be a no-op")
	}

	favourites, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(favourites) != 1 {
		t.Fatalf("expected single favourite, got %v", favourites)
	}
}

func TestFavourites_Remove(t *testing.T) {
	svc := NewFavouritesService(newMemState())
	ctx := context.Background()

	if _, err := svc.Add(ctx, entity.FavouritePlace{PlaceID: "p1", Name: "A"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Add(ctx, entity.FavouritePlace{PlaceID: "p2", Name: "B"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	removed, err := svc.Remove(ctx, "p1")
	if err != nil || !removed {
		t.Fatalf("expected removal, removed=%v err=%v", removed, err)
	}

	removed, err = svc.Remove(ctx, "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed {
		t.Fatalf("expected second removal to be a no-op")
	}

	favourites, _ := svc.List(ctx)
	if len(favourites) != 1 || favourites[0].PlaceID != "p2" {
		t.Fatalf("unexpected favourites: %v", favourites)
	}
}

func TestFavourites_RequiresPlaceID(t *testing.T) {
	svc := NewFavouritesService(newMemState())

	if _, err := svc.Add(context.Background(), entity.FavouritePlace{Name: "No ID"}); err == nil {
		t.Fatalf("expected validation error")
	}
}
