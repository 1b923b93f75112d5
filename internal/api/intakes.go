package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/nutrisuggest/nutri/internal/models"
)

// IntakeQueryParams filter GET /intakes.
type IntakeQueryParams struct {
	StartDate string
	EndDate   string
	Page      int
	Limit     int
}

// CreateIntakeItem references exactly one of food or recipe.
type CreateIntakeItem struct {
	FoodID        *int    `json:"food_id,omitempty"`
	RecipeID      *int    `json:"recipe_id,omitempty"`
	QuantityGrams float64 `json:"quantity_grams"`
}

// CreateIntakeData is the body for POST /intakes.
type CreateIntakeData struct {
	ConsumedAt time.Time          `json:"consumed_at"`
	MealType   models.MealType    `json:"meal_type"`
	Items      []CreateIntakeItem `json:"items"`
}

// IntakesResponse is the envelope for the intake list endpoint.
type IntakesResponse struct {
	Success bool `json:"success"`
	Data    *struct {
		Intakes    []models.Intake   `json:"intakes"`
		Pagination models.Pagination `json:"pagination"`
	} `json:"data,omitempty"`
}

// IntakeResponse is the envelope for single-intake endpoints.
type IntakeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    *struct {
		Intake models.Intake `json:"intake"`
	} `json:"data,omitempty"`
}

// DailyNutritionResponse is the envelope for the daily aggregate endpoints.
type DailyNutritionResponse struct {
	Success bool `json:"success"`
	Data    *struct {
		Nutrition models.DailyNutrition `json:"nutrition"`
	} `json:"data,omitempty"`
}

// WeeklyNutritionResponse is the envelope for the weekly aggregate endpoint.
type WeeklyNutritionResponse struct {
	Success bool                    `json:"success"`
	Data    *models.WeeklyNutrition `json:"data,omitempty"`
}

// Intakes lists logged intakes, newest first.
func (c *Client) Intakes(ctx context.Context, params IntakeQueryParams) (*IntakesResponse, error) {
	q := url.Values{}
	if params.StartDate != "" {
		q.Set("startDate", params.StartDate)
	}
	if params.EndDate != "" {
		q.Set("endDate", params.EndDate)
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}

	path := "/intakes"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	var resp IntakesResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// Intake fetches one intake by id.
func (c *Client) Intake(ctx context.Context, id int) (*IntakeResponse, error) {
	var resp IntakeResponse
	if err := c.get(ctx, fmt.Sprintf("/intakes/%d", id), &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// TodayNutrition fetches the aggregate for the current day.
func (c *Client) TodayNutrition(ctx context.Context) (*DailyNutritionResponse, error) {
	var resp DailyNutritionResponse
	if err := c.get(ctx, "/intakes/nutrition/today", &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// DailyNutrition fetches the aggregate for a given date (YYYY-MM-DD).
func (c *Client) DailyNutrition(ctx context.Context, date string) (*DailyNutritionResponse, error) {
	var resp DailyNutritionResponse
	if err := c.get(ctx, "/intakes/nutrition/daily/"+url.PathEscape(date), &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// WeeklyNutrition fetches the aggregate for the week starting at startDate.
func (c *Client) WeeklyNutrition(ctx context.Context, startDate string) (*WeeklyNutritionResponse, error) {
	var resp WeeklyNutritionResponse
	if err := c.get(ctx, "/intakes/nutrition/weekly/"+url.PathEscape(startDate), &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// CreateIntake logs a meal event.
func (c *Client) CreateIntake(ctx context.Context, data CreateIntakeData) (*IntakeResponse, error) {
	var resp IntakeResponse
	if err := c.post(ctx, "/intakes", data, &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// UpdateIntake replaces fields of an existing intake.
func (c *Client) UpdateIntake(ctx context.Context, id int, data CreateIntakeData) (*IntakeResponse, error) {
	var resp IntakeResponse
	if err := c.put(ctx, fmt.Sprintf("/intakes/%d", id), data, &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// DeleteIntake removes a logged intake.
func (c *Client) DeleteIntake(ctx context.Context, id int) (*BaseResponse, error) {
	var resp BaseResponse
	if err := c.delete(ctx, fmt.Sprintf("/intakes/%d", id), &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// AddIntakeItem appends an item to an existing intake.
func (c *Client) AddIntakeItem(ctx context.Context, intakeID int, item CreateIntakeItem) (*IntakeResponse, error) {
	var resp IntakeResponse
	if err := c.post(ctx, fmt.Sprintf("/intakes/%d/items", intakeID), item, &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// RemoveIntakeItem deletes one item from an intake.
func (c *Client) RemoveIntakeItem(ctx context.Context, intakeID, itemID int) (*IntakeResponse, error) {
	var resp IntakeResponse
	if err := c.delete(ctx, fmt.Sprintf("/intakes/%d/items/%d", intakeID, itemID), &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// LogFood logs a single food as a new intake. A zero consumedAt means now.
func (c *Client) LogFood(ctx context.Context, foodID int, quantityGrams float64, mealType models.MealType, consumedAt time.Time) (*IntakeResponse, error) {
	if consumedAt.IsZero() {
		consumedAt = time.Now().UTC()
	}
	return c.CreateIntake(ctx, CreateIntakeData{
		ConsumedAt: consumedAt,
		MealType:   mealType,
		Items:      []CreateIntakeItem{{FoodID: &foodID, QuantityGrams: quantityGrams}},
	})
}

// LogRecipe logs a recipe as a new intake; servings are converted to grams
// at 100g per serving, matching the server's convention.
func (c *Client) LogRecipe(ctx context.Context, recipeID int, servings float64, mealType models.MealType, consumedAt time.Time) (*IntakeResponse, error) {
	if consumedAt.IsZero() {
		consumedAt = time.Now().UTC()
	}
	return c.CreateIntake(ctx, CreateIntakeData{
		ConsumedAt: consumedAt,
		MealType:   mealType,
		Items:      []CreateIntakeItem{{RecipeID: &recipeID, QuantityGrams: servings * 100}},
	})
}
