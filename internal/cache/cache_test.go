package cache

import (
	"testing"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestTouchAndRecent(t *testing.T) {
	c := openTestCache(t)

	if err := c.Touch(KindFood, 1, "Oats", "389 kcal/100g"); err != nil {
		t.Fatalf("touch: %v", err)
	}
	if err := c.Touch(KindFood, 2, "Banana", "89 kcal/100g"); err != nil {
		t.Fatalf("touch: %v", err)
	}
	if err := c.Touch(KindRecipe, 1, "Chili", ""); err != nil {
		t.Fatalf("touch: %v", err)
	}

	items, err := c.Recent(KindFood, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("recent foods: got %d, want 2", len(items))
	}
	for _, item := range items {
		if item.Kind != KindFood {
			t.Errorf("recipe leaked into food results: %+v", item)
		}
	}
}

func TestTouchCountsUses(t *testing.T) {
	c := openTestCache(t)

	for i := 0; i < 3; i++ {
		if err := c.Touch(KindFood, 1, "Oats", ""); err != nil {
			t.Fatalf("touch: %v", err)
		}
	}

	items, err := c.Recent(KindFood, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items: got %d, want 1", len(items))
	}
	if items[0].Uses != 3 {
		t.Fatalf("uses: got %d, want 3", items[0].Uses)
	}
}

func TestTouchUpdatesName(t *testing.T) {
	c := openTestCache(t)

	c.Touch(KindFood, 1, "Oats", "")
	c.Touch(KindFood, 1, "Rolled Oats", "389 kcal/100g")

	items, _ := c.Recent(KindFood, 10)
	if len(items) != 1 || items[0].Name != "Rolled Oats" {
		t.Fatalf("items: %+v", items)
	}
}

func TestRemove(t *testing.T) {
	c := openTestCache(t)

	c.Touch(KindFood, 1, "Oats", "")
	if err := c.Remove(KindFood, 1); err != nil {
		t.Fatalf("remove: %v", err)
	}

	items, _ := c.Recent(KindFood, 10)
	if len(items) != 0 {
		t.Fatalf("items after remove: %+v", items)
	}
}

func TestRecentLimit(t *testing.T) {
	c := openTestCache(t)

	for i := 1; i <= 5; i++ {
		c.Touch(KindFood, i, "food", "")
	}

	items, err := c.Recent(KindFood, 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("items: got %d, want 3", len(items))
	}
}
