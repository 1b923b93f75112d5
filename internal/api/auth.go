package api

import (
	"context"

	"github.com/nutrisuggest/nutri/internal/models"
)

// LoginCredentials is the body for POST /auth/login.
type LoginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterData is the body for POST /auth/register.
type RegisterData struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// AuthPayload is the data block of a successful login/register response.
type AuthPayload struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// AuthResponse is the envelope for login and register.
type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    *AuthPayload `json:"data,omitempty"`
}

// UserPayload is the data block of a current-user response.
type UserPayload struct {
	User models.User `json:"user"`
}

// UserResponse is the envelope for /auth/me and profile updates.
type UserResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    *UserPayload `json:"data,omitempty"`
}

// BaseResponse is the minimal success envelope.
type BaseResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ProfileUpdate is a partial profile; nil fields are left untouched.
type ProfileUpdate struct {
	Age            *int                  `json:"age,omitempty"`
	Gender         *models.Gender        `json:"gender,omitempty"`
	HeightCm       *float64              `json:"height_cm,omitempty"`
	WeightKg       *float64              `json:"weight_kg,omitempty"`
	ActivityLevel  *models.ActivityLevel `json:"activity_level,omitempty"`
	Goal           *models.Goal          `json:"goal,omitempty"`
	TargetCalories *float64              `json:"target_calories,omitempty"`
	TargetProteinG *float64              `json:"target_protein_g,omitempty"`
	TargetCarbsG   *float64              `json:"target_carbs_g,omitempty"`
	TargetFatG     *float64              `json:"target_fat_g,omitempty"`
	TargetWaterMl  *float64              `json:"target_water_ml,omitempty"`
}

// TargetsRequest is the body for POST /auth/calculate-targets.
type TargetsRequest struct {
	Age           int                  `json:"age"`
	Gender        models.Gender        `json:"gender"`
	WeightKg      float64              `json:"weight_kg"`
	HeightCm      float64              `json:"height_cm"`
	ActivityLevel models.ActivityLevel `json:"activity_level"`
	Goal          models.Goal          `json:"goal"`
}

// ComputedTargets are server-computed daily targets.
type ComputedTargets struct {
	TargetCalories float64 `json:"target_calories"`
	TargetProteinG float64 `json:"target_protein_g"`
	TargetCarbsG   float64 `json:"target_carbs_g"`
	TargetFatG     float64 `json:"target_fat_g"`
}

// TargetsResponse is the envelope for calculate-targets.
type TargetsResponse struct {
	Success bool `json:"success"`
	Data    *struct {
		Targets ComputedTargets `json:"targets"`
	} `json:"data,omitempty"`
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, creds LoginCredentials) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.post(ctx, "/auth/login", creds, &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// Register creates an account and logs it in.
func (c *Client) Register(ctx context.Context, data RegisterData) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.post(ctx, "/auth/register", data, &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// CurrentUser fetches the account the stored token belongs to.
func (c *Client) CurrentUser(ctx context.Context) (*UserResponse, error) {
	var resp UserResponse
	if err := c.get(ctx, "/auth/me", &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// UpdateProfile applies a partial profile update.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*UserResponse, error) {
	var resp UserResponse
	if err := c.put(ctx, "/auth/profile", update, &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// DeleteAccount permanently removes the authenticated account.
func (c *Client) DeleteAccount(ctx context.Context) (*BaseResponse, error) {
	var resp BaseResponse
	if err := c.post(ctx, "/auth/delete-account", struct{}{}, &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}

// CalculateTargets asks the server to derive daily targets from profile
// inputs without persisting anything.
func (c *Client) CalculateTargets(ctx context.Context, req TargetsRequest) (*TargetsResponse, error) {
	var resp TargetsResponse
	if err := c.post(ctx, "/auth/calculate-targets", req, &resp); err != nil {
		return nil, normalize(err)
	}
	return &resp, nil
}
