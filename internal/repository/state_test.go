package repository

import (
	"context"
	"testing"

	"github.com/tcadundee/hobby-finder/api/internal/database"
)

func TestUserKey(t *testing.T) {
	if got := UserKey("u-123", "sortOption"); got != "u-123:sortOption" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := UserKey("", "sortOption"); got != "guest:sortOption" {
		t.Fatalf("expected guest namespace, got %s", got)
	}
}

func TestSQLiteStateRepository_RoundTrip(t *testing.T) {
	db, err := database.Open(context.Background(), t.TempDir()+"/state.db")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()

	repo := NewSQLiteStateRepository(db)
	ctx := context.Background()

	if _, ok, err := repo.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := repo.Set(ctx, "guest:minRating", "3"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := repo.Set(ctx, "guest:minRating", "4"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	value, ok, err := repo.Get(ctx, "guest:minRating")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if value != "4" {
		t.Fatalf("expected last write to win, got %s", value)
	}

	if err := repo.Delete(ctx, "guest:minRating"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := repo.Get(ctx, "guest:minRating"); ok {
		t.Fatalf("expected key gone after delete")
	}
}
