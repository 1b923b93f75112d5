package dashboard

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nutrisuggest/nutri/internal/models"
)

func testModel() Model {
	return NewModel(nil, nil, nil, time.Minute)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPanelSwitching(t *testing.T) {
	m := testModel()

	updated, _ := m.Update(keyMsg("2"))
	m = updated.(Model)
	if m.ActivePanel != PanelMeals {
		t.Fatalf("panel after '2': got %v, want meals", m.ActivePanel)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	if m.ActivePanel != PanelRecommend {
		t.Fatalf("panel after tab: got %v, want recommend", m.ActivePanel)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	if m.ActivePanel != PanelOverview {
		t.Fatalf("panel wrap-around: got %v, want overview", m.ActivePanel)
	}
}

func TestScrollNeverNegative(t *testing.T) {
	m := testModel()

	updated, _ := m.Update(keyMsg("k"))
	m = updated.(Model)
	if m.ScrollOffset[PanelOverview] != 0 {
		t.Fatalf("scroll offset: got %d, want 0", m.ScrollOffset[PanelOverview])
	}

	updated, _ = m.Update(keyMsg("j"))
	m = updated.(Model)
	if m.ScrollOffset[PanelOverview] != 1 {
		t.Fatalf("scroll offset after j: got %d, want 1", m.ScrollOffset[PanelOverview])
	}
}

func TestRefreshDataMsgUpdatesModel(t *testing.T) {
	m := testModel()
	now := time.Now()

	daily := &models.DailyNutrition{Date: "2026-08-28"}
	updated, _ := m.Update(RefreshDataMsg{Daily: daily, Score: 72, Timestamp: now})
	m = updated.(Model)

	if m.Daily != daily || m.Score != 72 || !m.LastRefresh.Equal(now) {
		t.Fatalf("model after refresh: daily=%v score=%d", m.Daily, m.Score)
	}
}

func TestMealCycling(t *testing.T) {
	m := testModel()
	m.QuickMeal = models.MealBreakfast

	seen := map[models.MealType]bool{}
	for i := 0; i < 4; i++ {
		seen[m.QuickMeal] = true
		updated, _ := m.Update(keyMsg("m"))
		m = updated.(Model)
	}
	if len(seen) != 4 {
		t.Fatalf("meal cycling covered %d meals, want 4", len(seen))
	}
	if m.QuickMeal != models.MealBreakfast {
		t.Fatalf("meal after full cycle: got %s, want breakfast", m.QuickMeal)
	}
}

func TestCurrentMealType(t *testing.T) {
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
		if got := currentMealType(at); got != tt.want {
			t.Errorf("currentMealType(%02d:00): got %s, want %s", tt.hour, got, tt.want)
		}
	}
}

func TestQuickLogNeedsRecentItems(t *testing.T) {
	m := testModel()

	updated, _ := m.Update(keyMsg("l"))
	m = updated.(Model)
	if m.QuickLogging {
		t.Fatal("quick-log opened with no recent items")
	}
}

func TestQuickLogEscape(t *testing.T) {
	m := testModel()
	m.QuickLogging = true

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if m.QuickLogging {
		t.Fatal("escape did not close quick-log")
	}
}

func TestTruncateString(t *testing.T) {
	if got := truncateString("hello world", 6); got != "hello…" {
		t.Fatalf("truncate: got %q", got)
	}
	if got := truncateString("hi", 6); got != "hi" {
		t.Fatalf("truncate short: got %q", got)
	}
}
