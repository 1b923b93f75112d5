package models

import (
	"time"
)

// Gender represents a profile gender value
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ActivityLevel represents a profile activity level
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// Goal represents a profile goal
type Goal string

const (
	GoalLoseWeight Goal = "lose_weight"
	GoalMaintain   Goal = "maintain"
	GoalGainWeight Goal = "gain_weight"
	GoalGainMuscle Goal = "gain_muscle"
)

// MealType represents when an intake was consumed
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealTypes lists all meal types in display order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// Valid reports whether m is one of the four known meal types.
func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// UserProfile carries physiological inputs and computed daily targets.
// The six input fields are pointers: nil means "not filled in yet", which
// feeds profile-completeness gating.
type UserProfile struct {
	UserID         int            `json:"user_id"`
	Age            *int           `json:"age,omitempty"`
	Gender         *Gender        `json:"gender,omitempty"`
	HeightCm       *float64       `json:"height_cm,omitempty"`
	WeightKg       *float64       `json:"weight_kg,omitempty"`
	ActivityLevel  *ActivityLevel `json:"activity_level,omitempty"`
	Goal           *Goal          `json:"goal,omitempty"`
	TargetCalories *float64       `json:"target_calories,omitempty"`
	TargetProteinG *float64       `json:"target_protein_g,omitempty"`
	TargetCarbsG   *float64       `json:"target_carbs_g,omitempty"`
	TargetFatG     *float64       `json:"target_fat_g,omitempty"`
	TargetWaterMl  *float64       `json:"target_water_ml,omitempty"`
}

// Complete reports whether all six physiological inputs are set.
func (p *UserProfile) Complete() bool {
	if p == nil {
		return false
	}
	return p.Age != nil && p.Gender != nil && p.HeightCm != nil &&
		p.WeightKg != nil && p.ActivityLevel != nil && p.Goal != nil
}

// User represents an account as returned by the API.
type User struct {
	ID        int          `json:"id"`
	Email     string       `json:"email"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Profile   *UserProfile `json:"profile,omitempty"`
}

// Food is a nutrition-bearing entity keyed by per-100g macro values.
type Food struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Brand           string   `json:"brand,omitempty"`
	Barcode         string   `json:"barcode,omitempty"`
	CaloriesPer100g float64  `json:"calories_per_100g"`
	ProteinPer100g  float64  `json:"protein_per_100g"`
	CarbsPer100g    float64  `json:"carbs_per_100g"`
	FatPer100g      float64  `json:"fat_per_100g"`
	FiberPer100g    *float64 `json:"fiber_per_100g,omitempty"`
	CreatedByUserID *int     `json:"created_by_user_id,omitempty"`
	Category        string   `json:"category,omitempty"`
}

// RecipeIngredient references a Food by id plus a quantity in grams.
type RecipeIngredient struct {
	ID            int     `json:"id"`
	RecipeID      int     `json:"recipe_id"`
	FoodID        int     `json:"food_id"`
	QuantityGrams float64 `json:"quantity_grams"`
	Food          *Food   `json:"food,omitempty"`
}

// Recipe owns an ordered set of ingredients; nutrition is per serving.
type Recipe struct {
	ID                 int                `json:"id"`
	Name               string             `json:"name"`
	UserID             int                `json:"user_id"`
	Description        string             `json:"description,omitempty"`
	Instructions       string             `json:"instructions,omitempty"`
	PrepTimeMinutes    *int               `json:"prep_time_minutes,omitempty"`
	CookTimeMinutes    *int               `json:"cook_time_minutes,omitempty"`
	Servings           int                `json:"servings"`
	CaloriesPerServing *float64           `json:"calories_per_serving,omitempty"`
	Ingredients        []RecipeIngredient `json:"ingredients"`
}

// IntakeItem references exactly one of food or recipe, never both.
type IntakeItem struct {
	ID            int     `json:"id"`
	IntakeID      int     `json:"intake_id"`
	FoodID        *int    `json:"food_id,omitempty"`
	RecipeID      *int    `json:"recipe_id,omitempty"`
	QuantityGrams float64 `json:"quantity_grams"`
	Food          *Food   `json:"food,omitempty"`
	Recipe        *Recipe `json:"recipe,omitempty"`
}

// Intake is a logged meal-consumption event.
type Intake struct {
	ID         int          `json:"id"`
	UserID     int          `json:"user_id"`
	ConsumedAt time.Time    `json:"consumed_at"`
	MealType   MealType     `json:"meal_type"`
	Items      []IntakeItem `json:"items"`
}

// NutritionTotals is a macro aggregate (fiber optional).
type NutritionTotals struct {
	Calories float64  `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
	Fiber    *float64 `json:"fiber,omitempty"`
}

// MealNutrition breaks totals out per meal type.
type MealNutrition struct {
	NutritionTotals
	Breakfast NutritionTotals `json:"breakfast"`
	Lunch     NutritionTotals `json:"lunch"`
	Dinner    NutritionTotals `json:"dinner"`
	Snack     NutritionTotals `json:"snack"`
}

// ForMeal returns the totals bucket for a given meal type.
func (m *MealNutrition) ForMeal(meal MealType) NutritionTotals {
	switch meal {
	case MealBreakfast:
		return m.Breakfast
	case MealLunch:
		return m.Lunch
	case MealDinner:
		return m.Dinner
	case MealSnack:
		return m.Snack
	}
	return NutritionTotals{}
}

// NutritionTargets are per-user daily nutrient goals.
type NutritionTargets struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// NutritionProgress is consumed/target per nutrient, as percentages.
type NutritionProgress struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// DailyNutrition is the server-aggregated view for one day. It is never
// mutated locally except by full replacement.
type DailyNutrition struct {
	Date     string            `json:"date"`
	Total    NutritionTotals   `json:"total"`
	ByMeal   MealNutrition     `json:"by_meal"`
	Targets  NutritionTargets  `json:"targets"`
	Progress NutritionProgress `json:"progress"`
	Intakes  []Intake          `json:"intakes"`
}

// DailySummary is one day's entry in a weekly response.
type DailySummary struct {
	Date     string            `json:"date"`
	Total    NutritionTotals   `json:"total"`
	Targets  NutritionTargets  `json:"targets"`
	Progress NutritionProgress `json:"progress"`
}

// WeeklyNutrition is the server-aggregated view for one week.
type WeeklyNutrition struct {
	WeekStart      string           `json:"week_start"`
	DailyNutrition []DailySummary   `json:"daily_nutrition"`
	WeeklyAverages NutritionTotals  `json:"weekly_averages"`
	WeeklyTargets  NutritionTargets `json:"weekly_targets"`
}

// FoodRecommendation is a scored food suggestion from the recommendation
// service. The fit score is opaque to the client.
type FoodRecommendation struct {
	ID                int      `json:"id"`
	Name              string   `json:"name"`
	Brand             string   `json:"brand,omitempty"`
	CaloriesPer100g   float64  `json:"calories_per_100g"`
	ProteinPer100g    float64  `json:"protein_per_100g"`
	CarbsPer100g      float64  `json:"carbs_per_100g"`
	FatPer100g        float64  `json:"fat_per_100g"`
	FiberPer100g      *float64 `json:"fiber_per_100g,omitempty"`
	RecommendedAmount float64  `json:"recommended_amount"`
	FitScore          float64  `json:"fit_score"`
	Reasoning         string   `json:"reasoning"`
}

// RecipeRecommendation is a scored recipe suggestion.
type RecipeRecommendation struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	CaloriesPerServing float64 `json:"calories_per_serving"`
	FitScore           float64 `json:"fit_score"`
	Reasoning          string  `json:"reasoning,omitempty"`
}

// NextMealRecommendations is replaced wholesale per request, never merged.
type NextMealRecommendations struct {
	RemainingCalories  float64                `json:"remaining_calories"`
	RemainingProtein   float64                `json:"remaining_protein"`
	RemainingCarbs     float64                `json:"remaining_carbs"`
	RemainingFat       float64                `json:"remaining_fat"`
	MealType           string                 `json:"meal_type"`
	RecommendedFoods   []FoodRecommendation   `json:"recommended_foods"`
	RecommendedRecipes []RecipeRecommendation `json:"recommended_recipes"`
	NutritionTips      []string               `json:"nutrition_tips"`
}

// MealPlan is one meal slot in a generated daily plan.
type MealPlan struct {
	MealType      string                 `json:"meal_type"`
	Foods         []FoodRecommendation   `json:"foods"`
	Recipes       []RecipeRecommendation `json:"recipes"`
	TotalCalories float64                `json:"total_calories"`
	TotalProtein  float64                `json:"total_protein"`
	TotalCarbs    float64                `json:"total_carbs"`
	TotalFat      float64                `json:"total_fat"`
}

// DailyPlan is a full generated day from the recommendation service.
type DailyPlan struct {
	Date            string     `json:"date"`
	TargetCalories  float64    `json:"target_calories"`
	TargetProtein   float64    `json:"target_protein"`
	TargetCarbs     float64    `json:"target_carbs"`
	TargetFat       float64    `json:"target_fat"`
	Meals           []MealPlan `json:"meals"`
	NutritionScore  float64    `json:"nutrition_score"`
	Recommendations []string   `json:"recommendations"`
}

// NutrientGap describes one nutrient's deficit/surplus in a gap analysis.
type NutrientGap struct {
	Nutrient      string  `json:"nutrient"`
	Current       float64 `json:"current"`
	Target        float64 `json:"target"`
	Deficit       float64 `json:"deficit"`
	Surplus       float64 `json:"surplus"`
	PercentageMet float64 `json:"percentage_met"`
	Status        string  `json:"status"`
}

// GapAnalysis is the response of the analyze-gaps endpoint.
type GapAnalysis struct {
	Gaps              []NutrientGap        `json:"gaps"`
	PriorityNutrients []string             `json:"priority_nutrients"`
	RecommendedFoods  []FoodRecommendation `json:"recommended_foods"`
	ActionableTips    []string             `json:"actionable_tips"`
	OverallScore      float64              `json:"overall_score"`
}

// Pagination is the standard list-envelope pagination block.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}
