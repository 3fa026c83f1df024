package service

import (
	"context"
	"fmt"
	"testing"
)

func TestRecents_PushDeduplicates(t *testing.T) {
	svc := NewRecentsService(newMemState())
	ctx := context.Background()

	for _, keyword := range []string{"chess", "yoga", "chess"} {
		if err := svc.Push(ctx, "u-1", keyword); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	recents, err := svc.List(ctx, "u-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recents) != 2 || recents[0] != "chess" || recents[1] != "yoga" {
		t.Fatalf("expected [chess yoga], got %v", recents)
	}
}

func TestRecents_CapAtThirty(t *testing.T) {
	svc := NewRecentsService(newMemState())
	ctx := context.Background()

	for i := 0; i < 31; i++ {
		if err := svc.Push(ctx, "u-1", fmt.Sprintf("hobby-%d", i)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	recents, err := svc.List(ctx, "u-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recents) != 30 {
		t.Fatalf("expected 30 entries, got %d", len(recents))
	}
	if recents[0] != "hobby-30" {
		t.Fatalf("expected newest first, got %s", recents[0])
	}
	for _, keyword := range recents {
		if keyword == "hobby-0" {
			t.Fatalf("expected oldest entry dropped, still present: %v", recents)
		}
	}
}

func TestRecents_EmptyListIsNotAnError(t *testing.T) {
	svc := NewRecentsService(newMemState())

	recents, err := svc.List(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recents) != 0 {
		t.Fatalf("expected empty list, got %v", recents)
	}
}

func TestRecents_PerUserIsolation(t *testing.T) {
	svc := NewRecentsService(newMemState())
	ctx := context.Background()

	if err := svc.Push(ctx, "u-1", "chess"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other, err := svc.List(ctx, "u-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no leakage across users, got %v", other)
	}
}
