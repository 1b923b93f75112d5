package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/nutrisuggest/nutri/internal/models"
)

// RecipeSearchParams are the query parameters for GET /recipes/search.
type RecipeSearchParams struct {
	Query       string
	Page        int
	Limit       int
	CreatedByMe bool
	PublicOnly  bool
}

// RecipeList is the data block of a recipe list response; like FoodList it
// comes in enveloped and bare-array shapes.
type RecipeList struct {
	Recipes    []models.Recipe    `json:"recipes"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// UnmarshalJSON accepts both list shapes.
func (l *RecipeList) UnmarshalJSON(data []byte) error {
	type plain RecipeList
	var obj plain
	if err := json.Unmarshal(data, &obj); err == nil {
		*l = RecipeList(obj)
		return nil
	}
	var arr []models.Recipe
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	*l = RecipeList{Recipes: arr}
	return nil
}

// RecipesResponse is the envelope for recipe list endpoints.
type RecipesResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    *RecipeList `json:"data,omitempty"`
}

// RecipeResponse is the envelope for single-recipe endpoints.
type RecipeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    *struct {
		Recipe models.Recipe `json:"recipe"`
	} `json:"data,omitempty"`
}

// CreateRecipeIngredient references a food plus a quantity in grams.
type CreateRecipeIngredient struct {
	FoodID        int     `json:"food_id"`
	QuantityGrams float64 `json:"quantity_grams"`
}

// CreateRecipeData is the body for POST /recipes and PUT /recipes/{id}.
type CreateRecipeData struct {
	Name            string                   `json:"name"`
	Instructions    string                   `json:"instructions,omitempty"`
	PrepTimeMinutes *int                     `json:"prep_time_minutes,omitempty"`
	Servings        int                      `json:"servings"`
	Ingredients     []CreateRecipeIngredient `json:"ingredients"`
}

// RecipeNutritionResponse is the envelope for GET /recipes/{id}/nutrition.
type RecipeNutritionResponse struct {
	Success bool `json:"success"`
	Data    *struct {
		Nutrition struct {
			Total      models.NutritionTotals `json:"total"`
			PerServing models.NutritionTotals `json:"per_serving"`
		} `json:"nutrition"`
		Servings int `json:"servings"`
	} `json:"data,omitempty"`
}

// SearchRecipes queries the recipe catalog.
func (c *Client) SearchRecipes(ctx context.Context, params RecipeSearchParams) (*RecipesResponse, error) {
	q := url.Values{}
	if params.Query != "" {
		q.Set("q", params.Query)
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.CreatedByMe {
		q.Set("my_recipes", "true")
		q.Set("show_public", "false")
	}
	if params.PublicOnly {
		q.Set("show_public", "true")
		q.Set("my_recipes", "false")
	}

	path := "/recipes/search"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	var resp RecipesResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// PopularRecipes lists the most-logged recipes.
func (c *Client) PopularRecipes(ctx context.Context) (*RecipesResponse, error) {
	var resp RecipesResponse
	if err := c.get(ctx, "/recipes/popular", &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// UserRecipes lists recipes created by the authenticated user.
func (c *Client) UserRecipes(ctx context.Context, page, limit int) (*RecipesResponse, error) {
	var resp RecipesResponse
	path := fmt.Sprintf("/recipes/my/recipes?page=%d&limit=%d", page, limit)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// Recipe fetches one recipe (with ingredients) by id.
func (c *Client) Recipe(ctx context.Context, id int) (*RecipeResponse, error) {
	var resp RecipeResponse
	if err := c.get(ctx, fmt.Sprintf("/recipes/%d", id), &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// RecipeNutrition computes total and per-serving nutrition for a recipe.
// A zero servings uses the recipe's own serving count.
func (c *Client) RecipeNutrition(ctx context.Context, id, servings int) (*RecipeNutritionResponse, error) {
	path := fmt.Sprintf("/recipes/%d/nutrition", id)
	if servings > 0 {
		path += fmt.Sprintf("?servings=%d", servings)
	}
	var resp RecipeNutritionResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// CreateRecipe adds a recipe with its ingredient list.
func (c *Client) CreateRecipe(ctx context.Context, data CreateRecipeData) (*RecipeResponse, error) {
	var resp RecipeResponse
	if err := c.post(ctx, "/recipes", data, &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// UpdateRecipe updates a recipe the user owns.
func (c *Client) UpdateRecipe(ctx context.Context, id int, data CreateRecipeData) (*RecipeResponse, error) {
	var resp RecipeResponse
	if err := c.put(ctx, fmt.Sprintf("/recipes/%d", id), data, &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// DeleteRecipe removes a recipe the user owns.
func (c *Client) DeleteRecipe(ctx context.Context, id int) (*BaseResponse, error) {
	var resp BaseResponse
	if err := c.delete(ctx, fmt.Sprintf("/recipes/%d", id), &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// AddIngredient appends an ingredient to a recipe.
func (c *Client) AddIngredient(ctx context.Context, recipeID int, ingredient CreateRecipeIngredient) (*RecipeResponse, error) {
	var resp RecipeResponse
	if err := c.post(ctx, fmt.Sprintf("/recipes/%d/ingredients", recipeID), ingredient, &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// RemoveIngredient deletes one ingredient from a recipe.
func (c *Client) RemoveIngredient(ctx context.Context, recipeID, ingredientID int) (*RecipeResponse, error) {
	var resp RecipeResponse
	if err := c.delete(ctx, fmt.Sprintf("/recipes/%d/ingredients/%d", recipeID, ingredientID), &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}
