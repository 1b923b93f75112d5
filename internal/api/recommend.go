package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/nutrisuggest/nutri/internal/models"
)

// NextMealParams describe current consumption for the next-meal scorer.
type NextMealParams struct {
	UserID           int
	TargetCalories   float64
	ConsumedCalories float64
	ConsumedProtein  float64
	ConsumedCarbs    float64
	ConsumedFat      float64
	MealType         string
}

// RecommendationResponse is the envelope for GET /recommend/next-meal.
type RecommendationResponse struct {
	Success bool                            `json:"success"`
	Message string                          `json:"message,omitempty"`
	Data    *models.NextMealRecommendations `json:"data,omitempty"`
}

// DailyPlanRequest is the body for POST /recommend/daily-plan.
type DailyPlanRequest struct {
	UserID         int                `json:"user_id"`
	UserProfile    models.UserProfile `json:"user_profile"`
	TargetCalories *float64           `json:"target_calories,omitempty"`
	Preferences    []string           `json:"preferences,omitempty"`
	Restrictions   []string           `json:"restrictions,omitempty"`
}

// DailyPlanResponse is the envelope for a generated daily plan.
type DailyPlanResponse struct {
	Success bool              `json:"success"`
	Data    *models.DailyPlan `json:"data,omitempty"`
}

// GapAnalysisRequest is the body for POST /recommend/analyze-gaps.
type GapAnalysisRequest struct {
	UserID         int                    `json:"user_id"`
	CurrentIntake  models.NutritionTotals `json:"current_intake"`
	TargetCalories float64                `json:"target_calories"`
	TargetProtein  float64                `json:"target_protein"`
	TargetCarbs    float64                `json:"target_carbs"`
	TargetFat      float64                `json:"target_fat"`
	MealType       string                 `json:"meal_type,omitempty"`
}

// GapAnalysisResponse is the envelope for a gap analysis.
type GapAnalysisResponse struct {
	Success bool                `json:"success"`
	Data    *models.GapAnalysis `json:"data,omitempty"`
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// NextMealRecommendations asks the scoring service what to eat next.
func (c *Client) NextMealRecommendations(ctx context.Context, params NextMealParams) (*RecommendationResponse, error) {
	q := url.Values{}
	q.Set("user_id", strconv.Itoa(params.UserID))
	q.Set("target_calories", fmtFloat(params.TargetCalories))
	if params.ConsumedCalories > 0 {
		q.Set("consumed_calories", fmtFloat(params.ConsumedCalories))
	}
	if params.ConsumedProtein > 0 {
		q.Set("consumed_protein", fmtFloat(params.ConsumedProtein))
	}
	if params.ConsumedCarbs > 0 {
		q.Set("consumed_carbs", fmtFloat(params.ConsumedCarbs))
	}
	if params.ConsumedFat > 0 {
		q.Set("consumed_fat", fmtFloat(params.ConsumedFat))
	}
	if params.MealType != "" {
		q.Set("meal_type", params.MealType)
	}

	var resp RecommendationResponse
	if err := c.recGet(ctx, fmt.Sprintf("/recommend/next-meal?%s", q.Encode()), &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// GenerateDailyPlan asks the scoring service for a full-day meal plan.
func (c *Client) GenerateDailyPlan(ctx context.Context, req DailyPlanRequest) (*DailyPlanResponse, error) {
	var resp DailyPlanResponse
	if err := c.recPost(ctx, "/recommend/daily-plan", req, &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// AnalyzeGaps asks the scoring service where today's intake falls short.
func (c *Client) AnalyzeGaps(ctx context.Context, req GapAnalysisRequest) (*GapAnalysisResponse, error) {
	var resp GapAnalysisResponse
	if err := c.recPost(ctx, "/recommend/analyze-gaps", req, &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}
