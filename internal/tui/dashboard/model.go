// Package dashboard is the interactive terminal dashboard: today's
// nutrition at a glance, the per-meal breakdown, and next-meal
// recommendations, refreshed on an interval.
package dashboard

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nutrisuggest/nutri/internal/cache"
	"github.com/nutrisuggest/nutri/internal/models"
	"github.com/nutrisuggest/nutri/internal/nutrition"
	"github.com/nutrisuggest/nutri/internal/session"
)

// Panel represents which panel is active
type Panel int

const (
	PanelOverview Panel = iota
	PanelMeals
	PanelRecommend
)

// MinWidth is the minimum terminal width for proper display
const MinWidth = 40

// MinHeight is the minimum terminal height for proper display
const MinHeight = 15

// TickMsg triggers a data refresh
type TickMsg time.Time

// RefreshDataMsg carries a refreshed snapshot of the nutrition state
type RefreshDataMsg struct {
	Daily     *models.DailyNutrition
	Score     int
	Recent    []cache.RecentItem
	Timestamp time.Time
	Err       string
}

// RecommendationsMsg carries a refreshed recommendation response
type RecommendationsMsg struct {
	Recs *models.NextMealRecommendations
	Err  string
}

// QuickLogResultMsg reports the outcome of a quick-log submission
type QuickLogResultMsg struct {
	OK  bool
	Err string
}

// Model is the main Bubble Tea model for the dashboard TUI
type Model struct {
	Session   *session.Store
	Nutrition *nutrition.Store
	Recent    *cache.Cache

	// Window dimensions
	Width  int
	Height int

	// Panel data
	Daily       *models.DailyNutrition
	Score       int
	Recs        *models.NextMealRecommendations
	RecentItems []cache.RecentItem

	// UI state
	ActivePanel  Panel
	ScrollOffset map[Panel]int
	ShowHelp     bool
	LastRefresh  time.Time
	ErrMsg       string

	// Quick-log state: pick a recent item, then enter grams
	QuickLogging bool
	QuickIndex   int
	GramsInput   textinput.Model
	QuickMeal    models.MealType

	// Configuration
	RefreshInterval time.Duration
}

// NewModel creates a new dashboard model
func NewModel(sess *session.Store, store *nutrition.Store, recent *cache.Cache, interval time.Duration) Model {
	grams := textinput.New()
	grams.Placeholder = "grams"
	grams.CharLimit = 6
	grams.Width = 8

	return Model{
		Session:         sess,
		Nutrition:       store,
		Recent:          recent,
		RefreshInterval: interval,
		ScrollOffset:    make(map[Panel]int),
		ActivePanel:     PanelOverview,
		QuickMeal:       currentMealType(time.Now()),
		GramsInput:      grams,
	}
}

// currentMealType guesses the meal slot from the wall clock.
func currentMealType(now time.Time) models.MealType {
	switch h := now.Hour(); {
	case h < 11:
		return models.MealBreakfast
	case h < 15:
		return models.MealLunch
	case h < 21:
		return models.MealDinner
	default:
		return models.MealSnack
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchData(),
		m.scheduleTick(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case TickMsg:
		return m, tea.Batch(m.fetchData(), m.scheduleTick())

	case RefreshDataMsg:
		m.Daily = msg.Daily
		m.Score = msg.Score
		m.RecentItems = msg.Recent
		m.LastRefresh = msg.Timestamp
		m.ErrMsg = msg.Err
		return m, nil

	case RecommendationsMsg:
		m.Recs = msg.Recs
		m.ErrMsg = msg.Err
		return m, nil

	case QuickLogResultMsg:
		if msg.OK {
			return m, m.fetchData()
		}
		m.ErrMsg = msg.Err
		return m, nil
	}

	return m, nil
}

// handleKey processes key input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.QuickLogging {
		return m.handleQuickLogKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.ActivePanel = (m.ActivePanel + 1) % 3
		return m, nil

	case "shift+tab":
		m.ActivePanel = (m.ActivePanel + 2) % 3
		return m, nil

	case "1":
		m.ActivePanel = PanelOverview
		return m, nil

	case "2":
		m.ActivePanel = PanelMeals
		return m, nil

	case "3":
		m.ActivePanel = PanelRecommend
		return m, nil

	case "j", "down":
		m.ScrollOffset[m.ActivePanel]++
		return m, nil

	case "k", "up":
		if m.ScrollOffset[m.ActivePanel] > 0 {
			m.ScrollOffset[m.ActivePanel]--
		}
		return m, nil

	case "r":
		return m, m.fetchData()

	case "n":
		return m, m.fetchRecommendations(m.QuickMeal)

	case "m":
		m.QuickMeal = nextMealType(m.QuickMeal)
		return m, nil

	case "l":
		if len(m.RecentItems) > 0 {
			m.QuickLogging = true
			m.QuickIndex = 0
			m.GramsInput.SetValue("")
		}
		return m, nil

	case "?":
		m.ShowHelp = !m.ShowHelp
		return m, nil
	}

	return m, nil
}

// handleQuickLogKey processes input while the quick-log overlay is open
func (m Model) handleQuickLogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.QuickLogging = false
		m.GramsInput.Blur()
		return m, nil

	case "j", "down":
		if !m.GramsInput.Focused() && m.QuickIndex < len(m.RecentItems)-1 {
			m.QuickIndex++
		}
		return m, nil

	case "k", "up":
		if !m.GramsInput.Focused() && m.QuickIndex > 0 {
			m.QuickIndex--
		}
		return m, nil

	case "enter":
		if !m.GramsInput.Focused() {
			m.GramsInput.Focus()
			return m, textinput.Blink
		}
		item := m.RecentItems[m.QuickIndex]
		grams := m.GramsInput.Value()
		m.QuickLogging = false
		m.GramsInput.Blur()
		return m, m.submitQuickLog(item, grams)
	}

	if m.GramsInput.Focused() {
		var cmd tea.Cmd
		m.GramsInput, cmd = m.GramsInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func nextMealType(meal models.MealType) models.MealType {
	for i, mt := range models.MealTypes {
		if mt == meal {
			return models.MealTypes[(i+1)%len(models.MealTypes)]
		}
	}
	return models.MealBreakfast
}

// View implements tea.Model
func (m Model) View() string {
	return m.renderView()
}

// scheduleTick returns a command that sends a TickMsg after the refresh interval
func (m Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.RefreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// fetchData returns a command that fetches today's data and sends a RefreshDataMsg
func (m Model) fetchData() tea.Cmd {
	return func() tea.Msg {
		return FetchData(context.Background(), m.Nutrition, m.Recent)
	}
}

// fetchRecommendations returns a command that asks for next-meal suggestions
func (m Model) fetchRecommendations(meal models.MealType) tea.Cmd {
	return func() tea.Msg {
		return FetchRecommendations(context.Background(), m.Nutrition, meal)
	}
}

// submitQuickLog returns a command that logs a recent item
func (m Model) submitQuickLog(item cache.RecentItem, grams string) tea.Cmd {
	meal := m.QuickMeal
	return func() tea.Msg {
		return SubmitQuickLog(context.Background(), m.Nutrition, m.Recent, item, grams, meal)
	}
}
