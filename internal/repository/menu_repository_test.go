package repository

import (
	"context"
	"testing"

	"github.com/coffee-bar/internal/models"
)

func TestMenuUpsertIsIdempotentByName(t *testing.T) {
	ctx := context.Background()
	repo := NewMenuRepository(openTestDB(t))

	seed := []models.MenuEntry{
		{Name: "Mocha", UnitPrice: 160, TotalStock: 6, SortOrder: 2},
		{Name: "Espresso", UnitPrice: 120, TotalStock: 10, SortOrder: 1},
	}
	for i := range seed {
		created, err := repo.Upsert(ctx, &seed[i])
		if err != nil || !created {
			t.Fatalf("first upsert want created got %v err=%v", created, err)
		}
	}

	created, err := repo.Upsert(ctx, &models.MenuEntry{Name: "Mocha", UnitPrice: 165, TotalStock: 3, SortOrder: 2})
	if err != nil || created {
		t.Fatalf("second upsert should update, created=%v err=%v", created, err)
	}

	entries, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("want 2 entries got %d", len(entries))
	}
	if entries[0].Name != "Espresso" || entries[1].Name != "Mocha" {
		t.Fatalf("unexpected order: %s, %s", entries[0].Name, entries[1].Name)
	}
	if entries[1].UnitPrice != 165 || entries[1].TotalStock != 3 {
		t.Fatalf("update not applied: %+v", entries[1])
	}
}
