package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/nutrisuggest/nutri/internal/models"
)

// FoodSearchParams are the query parameters for GET /foods/search.
type FoodSearchParams struct {
	Query       string
	Brand       string
	Page        int
	Limit       int
	CreatedByMe bool
	PublicOnly  bool
}

// FoodList is the data block of a food list response. The server returns
// either {foods, pagination} or a bare array depending on the endpoint.
type FoodList struct {
	Foods      []models.Food      `json:"foods"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// UnmarshalJSON accepts both list shapes.
func (l *FoodList) UnmarshalJSON(data []byte) error {
	type plain FoodList
	var obj plain
	if err := json.Unmarshal(data, &obj); err == nil {
		*l = FoodList(obj)
		return nil
	}
	var arr []models.Food
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	*l = FoodList{Foods: arr}
	return nil
}

// FoodsResponse is the envelope for food list endpoints.
type FoodsResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Data    *FoodList `json:"data,omitempty"`
}

// FoodResponse is the envelope for single-food endpoints.
type FoodResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    *struct {
		Food models.Food `json:"food"`
	} `json:"data,omitempty"`
}

// CreateFoodData is the body for POST /foods and PUT /foods/{id}.
type CreateFoodData struct {
	Name            string   `json:"name"`
	Brand           string   `json:"brand,omitempty"`
	Barcode         string   `json:"barcode,omitempty"`
	CaloriesPer100g float64  `json:"calories_per_100g"`
	ProteinPer100g  float64  `json:"protein_per_100g"`
	CarbsPer100g    float64  `json:"carbs_per_100g"`
	FatPer100g      float64  `json:"fat_per_100g"`
	FiberPer100g    *float64 `json:"fiber_per_100g,omitempty"`
}

// FoodNutritionResponse is the envelope for GET /foods/{id}/nutrition.
type FoodNutritionResponse struct {
	Success bool `json:"success"`
	Data    *struct {
		Nutrition     models.NutritionTotals `json:"nutrition"`
		QuantityGrams float64                `json:"quantity_grams"`
	} `json:"data,omitempty"`
}

// SearchFoods queries the food catalog.
func (c *Client) SearchFoods(ctx context.Context, params FoodSearchParams) (*FoodsResponse, error) {
	q := url.Values{}
	if params.Query != "" {
		q.Set("search", params.Query)
	}
	if params.Brand != "" {
		q.Set("brand", params.Brand)
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.CreatedByMe {
		q.Set("created_by_me", "true")
		q.Set("show_public", "false")
	}
	if params.PublicOnly {
		q.Set("show_public", "true")
		q.Set("created_by_me", "false")
	}

	path := "/foods/search"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	var resp FoodsResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// PopularFoods lists the most-logged foods.
func (c *Client) PopularFoods(ctx context.Context) (*FoodsResponse, error) {
	var resp FoodsResponse
	if err := c.get(ctx, "/foods/popular", &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// UserFoods lists foods created by the authenticated user.
func (c *Client) UserFoods(ctx context.Context, page, limit int) (*FoodsResponse, error) {
	var resp FoodsResponse
	path := fmt.Sprintf("/foods/my/foods?page=%d&limit=%d", page, limit)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// Food fetches one food by id.
func (c *Client) Food(ctx context.Context, id int) (*FoodResponse, error) {
	var resp FoodResponse
	if err := c.get(ctx, fmt.Sprintf("/foods/%d", id), &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// FoodNutrition computes nutrition for a quantity of a food. A zero
// quantity uses the server default (100g).
func (c *Client) FoodNutrition(ctx context.Context, id int, quantityGrams float64) (*FoodNutritionResponse, error) {
	path := fmt.Sprintf("/foods/%d/nutrition", id)
	if quantityGrams > 0 {
		path += fmt.Sprintf("?quantity=%g", quantityGrams)
	}
	var resp FoodNutritionResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// CreateFood adds a food to the catalog.
func (c *Client) CreateFood(ctx context.Context, data CreateFoodData) (*FoodResponse, error) {
	var resp FoodResponse
	if err := c.post(ctx, "/foods", data, &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// UpdateFood updates a food the user owns.
func (c *Client) UpdateFood(ctx context.Context, id int, data CreateFoodData) (*FoodResponse, error) {
	var resp FoodResponse
	if err := c.put(ctx, fmt.Sprintf("/foods/%d", id), data, &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// DeleteFood removes a food the user owns.
func (c *Client) DeleteFood(ctx context.Context, id int) (*BaseResponse, error) {
	var resp BaseResponse
	if err := c.delete(ctx, fmt.Sprintf("/foods/%d", id), &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// FoodByBarcode looks a food up by barcode.
func (c *Client) FoodByBarcode(ctx context.Context, barcode string) (*FoodResponse, error) {
	var resp FoodResponse
	if err := c.get(ctx, "/foods/barcode/"+url.PathEscape(barcode), &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}
