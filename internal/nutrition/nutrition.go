// Package nutrition holds the latest fetched daily/weekly aggregates and
// recommendations. Every mutation re-fetches the aggregate from the server
// instead of patching it locally; readers only ever see whole replacements.
package nutrition

import (
	"context"
	"sync"
	"time"

	"github.com/nutrisuggest/nutri/internal/api"
	"github.com/nutrisuggest/nutri/internal/models"
)

const transientErrorTTL = 5 * time.Second

// Op names an operation with its own loading flag, so concurrent fetches
// don't visually interfere with each other.
type Op string

const (
	OpToday           Op = "today"
	OpDaily           Op = "daily"
	OpWeekly          Op = "weekly"
	OpRecommendations Op = "recommendations"
	OpCreating        Op = "creating"
)

// Session is the slice of the auth session the nutrition store needs:
// who is logged in and whether their profile is complete enough for
// recommendations.
type Session interface {
	User() *models.User
	HasCompleteProfile() bool
}

// Store is the nutrition aggregation state container.
type Store struct {
	client  *api.Client
	session Session

	mu              sync.Mutex
	daily           *models.DailyNutrition
	weekly          []models.DailySummary
	recommendations *models.NextMealRecommendations
	loading         map[Op]bool
	err             string
	selectedDate    string

	errTTL time.Duration
	now    func() time.Time
}

// New creates an empty store. Data arrives with the first fetch.
func New(client *api.Client, session Session) *Store {
	return &Store{
		client:       client,
		session:      session,
		loading:      make(map[Op]bool),
		selectedDate: time.Now().Format("2006-01-02"),
		errTTL:       transientErrorTTL,
		now:          time.Now,
	}
}

// Daily returns the currently held daily aggregate, or nil before the
// first successful fetch.
func (s *Store) Daily() *models.DailyNutrition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.daily
}

// TodayIntakes returns the intakes of the held daily aggregate.
func (s *Store) TodayIntakes() []models.Intake {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.daily == nil {
		return nil
	}
	return s.daily.Intakes
}

// Weekly returns the held week of daily summaries.
func (s *Store) Weekly() []models.DailySummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.weekly
}

// Recommendations returns the latest recommendation response, or nil.
func (s *Store) Recommendations() *models.NextMealRecommendations {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recommendations
}

// Loading reports whether the named operation is in flight.
func (s *Store) Loading(op Op) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading[op]
}

// Err returns the current transient error message, or "".
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// SelectedDate returns the date (YYYY-MM-DD) the daily view is showing.
func (s *Store) SelectedDate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedDate
}

// TodayTotal returns the held total, or all zeros before the first fetch.
func (s *Store) TodayTotal() models.NutritionTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.daily == nil {
		return models.NutritionTotals{}
	}
	return s.daily.Total
}

// TodayTargets returns the held targets, falling back to the defaults
// before the first fetch.
func (s *Store) TodayTargets() models.NutritionTargets {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.daily == nil {
		return DefaultTargets
	}
	return s.daily.Targets
}

// TodayProgress recomputes consumed/target percentages on every call.
func (s *Store) TodayProgress() models.NutritionProgress {
	return Progress(s.TodayTotal(), s.TodayTargets())
}

// RemainingNutrients recomputes target minus consumed, floored at zero.
func (s *Store) RemainingNutrients() models.NutritionTargets {
	return Remaining(s.TodayTotal(), s.TodayTargets())
}

// OverallScore recomputes the 0-100 fulfillment score on every call.
func (s *Store) OverallScore() int {
	return Score(s.TodayProgress())
}

// MealDistribution returns the per-meal totals of the held aggregate.
func (s *Store) MealDistribution() map[models.MealType]models.NutritionTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.daily == nil {
		return nil
	}
	dist := make(map[models.MealType]models.NutritionTotals, len(models.MealTypes))
	for _, meal := range models.MealTypes {
		dist[meal] = s.daily.ByMeal.ForMeal(meal)
	}
	return dist
}

// SetError sets a transient error message that auto-clears after 5 seconds
// unless a newer message supersedes it first.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	s.err = msg
	ttl := s.errTTL
	s.mu.Unlock()

	if msg == "" {
		return
	}
	time.AfterFunc(ttl, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.err == msg {
			s.err = ""
		}
	})
}

func (s *Store) setLoading(op Op, v bool) {
	s.mu.Lock()
	s.loading[op] = v
	s.mu.Unlock()
}

// FetchToday replaces the daily aggregate with today's server view. This
// is the periodic-refresh path, so transient server failures are retried.
func (s *Store) FetchToday(ctx context.Context) bool {
	s.setLoading(OpToday, true)
	defer s.setLoading(OpToday, false)
	s.SetError("")

	var resp *api.DailyNutritionResponse
	err := api.Retry(ctx, func() error {
		var err error
		resp, err = s.client.TodayNutrition(ctx)
		return err
	})
	if err != nil {
		s.SetError(err.Error())
		return false
	}
	if !resp.Success || resp.Data == nil {
		return false
	}

	s.mu.Lock()
	s.daily = &resp.Data.Nutrition
	s.mu.Unlock()
	return true
}

// FetchDaily replaces the daily aggregate with the server view for a
// specific date and remembers that date as selected.
func (s *Store) FetchDaily(ctx context.Context, date string) bool {
	s.setLoading(OpDaily, true)
	defer s.setLoading(OpDaily, false)
	s.SetError("")

	resp, err := s.client.DailyNutrition(ctx, date)
	if err != nil {
		s.SetError(err.Error())
		return false
	}
	if !resp.Success || resp.Data == nil {
		return false
	}

	s.mu.Lock()
	s.daily = &resp.Data.Nutrition
	s.selectedDate = date
	s.mu.Unlock()
	return true
}

// FetchWeekly replaces the weekly summaries with the server view for the
// week starting at startDate.
func (s *Store) FetchWeekly(ctx context.Context, startDate string) bool {
	s.setLoading(OpWeekly, true)
	defer s.setLoading(OpWeekly, false)
	s.SetError("")

	resp, err := s.client.WeeklyNutrition(ctx, startDate)
	if err != nil {
		s.SetError(err.Error())
		return false
	}
	if !resp.Success || resp.Data == nil {
		return false
	}

	s.mu.Lock()
	s.weekly = resp.Data.DailyNutrition
	s.mu.Unlock()
	return true
}

// RefreshCurrentDay re-fetches whichever day the daily view is showing.
func (s *Store) RefreshCurrentDay(ctx context.Context) bool {
	s.mu.Lock()
	selected := s.selectedDate
	today := s.now().Format("2006-01-02")
	s.mu.Unlock()

	if selected == today {
		return s.FetchToday(ctx)
	}
	return s.FetchDaily(ctx, selected)
}

// FetchRecommendations asks the recommendation service what to eat next,
// based on today's totals and targets. Requires a complete profile; fails
// fast without a network call otherwise.
func (s *Store) FetchRecommendations(ctx context.Context, mealType models.MealType) bool {
	user := s.session.User()
	if user == nil || !s.session.HasCompleteProfile() {
		s.SetError("User profile is required for recommendations")
		return false
	}

	s.setLoading(OpRecommendations, true)
	defer s.setLoading(OpRecommendations, false)
	s.SetError("")

	total := s.TodayTotal()
	targets := s.TodayTargets()
	resp, err := s.client.NextMealRecommendations(ctx, api.NextMealParams{
		UserID:           user.ID,
		TargetCalories:   targets.Calories,
		ConsumedCalories: total.Calories,
		ConsumedProtein:  total.Protein,
		ConsumedCarbs:    total.Carbs,
		ConsumedFat:      total.Fat,
		MealType:         string(mealType),
	})
	if err != nil {
		s.SetError(err.Error())
		return false
	}
	if !resp.Success || resp.Data == nil {
		return false
	}

	s.mu.Lock()
	s.recommendations = resp.Data
	s.mu.Unlock()
	return true
}

// LogQuickFood logs a food as consumed now, then re-fetches today.
func (s *Store) LogQuickFood(ctx context.Context, foodID int, quantityGrams float64, mealType models.MealType) bool {
	s.setLoading(OpCreating, true)
	defer s.setLoading(OpCreating, false)
	s.SetError("")

	resp, err := s.client.LogFood(ctx, foodID, quantityGrams, mealType, time.Time{})
	if err != nil {
		s.SetError(err.Error())
		return false
	}
	if !resp.Success {
		return false
	}
	s.FetchToday(ctx)
	return true
}

// LogQuickRecipe logs a recipe as consumed now, then re-fetches today.
func (s *Store) LogQuickRecipe(ctx context.Context, recipeID int, servings float64, mealType models.MealType) bool {
	s.setLoading(OpCreating, true)
	defer s.setLoading(OpCreating, false)
	s.SetError("")

	resp, err := s.client.LogRecipe(ctx, recipeID, servings, mealType, time.Time{})
	if err != nil {
		s.SetError(err.Error())
		return false
	}
	if !resp.Success {
		return false
	}
	s.FetchToday(ctx)
	return true
}

// AddFoodToMeal creates a single-item intake for a meal, then re-fetches
// today.
func (s *Store) AddFoodToMeal(ctx context.Context, food *models.Food, quantityGrams float64, mealType models.MealType) bool {
	s.setLoading(OpCreating, true)
	defer s.setLoading(OpCreating, false)
	s.SetError("")

	resp, err := s.client.CreateIntake(ctx, api.CreateIntakeData{
		ConsumedAt: s.now().UTC(),
		MealType:   mealType,
		Items: []api.CreateIntakeItem{
			{FoodID: &food.ID, QuantityGrams: quantityGrams},
		},
	})
	if err != nil {
		s.SetError(err.Error())
		return false
	}
	if !resp.Success {
		s.SetError("Failed to add food to meal")
		return false
	}
	s.FetchToday(ctx)
	return true
}

// AddRecipeToMeal creates a single-item intake for a meal from a recipe,
// converting servings to grams at 100g per serving, then re-fetches today.
func (s *Store) AddRecipeToMeal(ctx context.Context, recipe *models.Recipe, servings float64, mealType models.MealType) bool {
	s.setLoading(OpCreating, true)
	defer s.setLoading(OpCreating, false)
	s.SetError("")

	resp, err := s.client.CreateIntake(ctx, api.CreateIntakeData{
		ConsumedAt: s.now().UTC(),
		MealType:   mealType,
		Items: []api.CreateIntakeItem{
			{RecipeID: &recipe.ID, QuantityGrams: servings * 100},
		},
	})
	if err != nil {
		s.SetError(err.Error())
		return false
	}
	if !resp.Success {
		s.SetError("Failed to add recipe to meal")
		return false
	}
	s.FetchToday(ctx)
	return true
}

// DeleteIntake removes a logged intake, then re-fetches today.
func (s *Store) DeleteIntake(ctx context.Context, intakeID int) bool {
	resp, err := s.client.DeleteIntake(ctx, intakeID)
	if err != nil {
		s.SetError(err.Error())
		return false
	}
	if !resp.Success {
		return false
	}
	s.FetchToday(ctx)
	return true
}
