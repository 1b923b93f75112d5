package cmd

import (
	"testing"
	"time"

	"github.com/nutrisuggest/nutri/internal/models"
)

func TestParseIngredient(t *testing.T) {
	ing, err := parseIngredient("12:150")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ing.FoodID != 12 || ing.QuantityGrams != 150 {
		t.Fatalf("got %+v, want food 12 at 150g", ing)
	}

	for _, bad := range []string{"12", "abc:100", "12:-5", "12:0"} {
		if _, err := parseIngredient(bad); err == nil {
			t.Errorf("parseIngredient(%q) should fail", bad)
		}
	}
}

func TestDefaultMealType(t *testing.T) {
	tests := []struct {
		hour int
		want models.MealType
	}{
		{7, models.MealBreakfast},
		{12, models.MealLunch},
		{19, models.MealDinner},
		{22, models.MealSnack},
	}
	for _, tt := range tests {
		at := time.Date(2026, 8, 28, tt.hour, 0, 0, 0, time.UTC)
		if got := defaultMealType(at); got != tt.want {
			t.Errorf("hour %d: got %v, want %v", tt.hour, got, tt.want)
		}
	}
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		day  string
		want string
	}{
		{"2026-08-24", "2026-08-24"}, // a Monday maps to itself
		{"2026-08-28", "2026-08-24"},
		{"2026-08-30", "2026-08-24"}, // Sunday still belongs to Monday's week
	}
	for _, tt := range tests {
		day, err := time.Parse("2006-01-02", tt.day)
		if err != nil {
			t.Fatal(err)
		}
		if got := startOfWeek(day).Format("2006-01-02"); got != tt.want {
			t.Errorf("startOfWeek(%s) = %s, want %s", tt.day, got, tt.want)
		}
	}
}
