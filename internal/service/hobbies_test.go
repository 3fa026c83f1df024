package service

import (
	"context"
	"testing"
	"time"
)

func TestHobbies_AllIncludesCustom(t *testing.T) {
	svc := NewHobbiesService(newMemState())
	ctx := context.Background()

	added, err := svc.AddCustom(ctx, "Falconry")
	if err != nil || !added {
		t.Fatalf("expected custom hobby added, added=%v err=%v", added, err)
	}
	if added, _ := svc.AddCustom(ctx, "falconry"); added {
		t.Fatalf("expected case-insensitive dedupe")
	}

	all, err := svc.All(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != len(defaultHobbies)+1 {
		t.Fatalf("expected defaults plus one custom, got %d", len(all))
	}
	if all[len(all)-1] != "Falconry" {
		t.Fatalf("expected custom hobby appended, got %v", all[len(all)-1])
	}
}

func TestHobbies_RandomPicksAreDistinct(t *testing.T) {
	svc := NewHobbiesService(newMemState())

	picks, err := svc.RandomPicks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(picks) != 3 {
		t.Fatalf("expected 3 picks, got %v", picks)
	}
	seen := map[string]bool{}
	for _, pick := range picks {
		if seen[pick] {
			t.Fatalf("expected distinct picks, got %v", picks)
		}
		seen[pick] = true
	}
}

func TestHobbies_RandomPicksCachedForTenMinutes(t *testing.T) {
	state := newMemState()
	svc := NewHobbiesService(state)
	now := time.Now()
	svc.now = func() time.Time { return now }

	first, err := svc.RandomPicks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Within the TTL the cached pick is returned verbatim.
	svc.now = func() time.Time { return now.Add(9 * time.Minute) }
	second, err := svc.RandomPicks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("expected cached picks %v, got %v", first, second)
		}
	}

	// Past the TTL a fresh pick is stored.
	svc.now = func() time.Time { return now.Add(11 * time.Minute) }
	if _, err := svc.RandomPicks(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.values[keyRandomHobbies] == "" {
		t.Fatalf("expected refreshed cache entry")
	}
}
