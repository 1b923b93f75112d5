// Package guard decides whether a navigation target may be entered given
// the current auth session, and where to send the user instead when not.
package guard

import (
	"context"
)

// Route is a navigable view with its access requirements.
type Route struct {
	Name            string
	Path            string
	Title           string
	RequiresAuth    bool
	RequiresGuest   bool
	RequiresProfile bool
}

// Routes is the full navigation table in display order.
var Routes = []Route{
	{Name: "login", Path: "/login", Title: "Login - NutriSuggest", RequiresGuest: true},
	{Name: "register", Path: "/register", Title: "Register - NutriSuggest", RequiresGuest: true},
	{Name: "dashboard", Path: "/dashboard", Title: "Dashboard - NutriSuggest", RequiresAuth: true, RequiresProfile: true},
	{Name: "profile", Path: "/profile", Title: "Profile - NutriSuggest", RequiresAuth: true},
	{Name: "foods", Path: "/foods", Title: "Foods - NutriSuggest", RequiresAuth: true},
	{Name: "recipes", Path: "/recipes", Title: "Recipes - NutriSuggest", RequiresAuth: true},
	{Name: "nutrition", Path: "/nutrition", Title: "Nutrition Analysis - NutriSuggest", RequiresAuth: true, RequiresProfile: true},
	{Name: "weight", Path: "/weight", Title: "Weight Tracking - NutriSuggest", RequiresAuth: true},
	{Name: "meal-planner", Path: "/meal-planner", Title: "Meal Planner - NutriSuggest", RequiresAuth: true},
	{Name: "settings", Path: "/settings", Title: "Settings - NutriSuggest", RequiresAuth: true},
}

// RouteByName looks a route up in the navigation table.
func RouteByName(name string) (Route, bool) {
	for _, r := range Routes {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// Session is the slice of the auth session the guard consults.
type Session interface {
	IsAuthenticated() bool
	HasCompleteProfile() bool
	CheckAuth(ctx context.Context) bool
}

// Decision is the outcome of evaluating a navigation target.
type Decision struct {
	Allow      bool
	RedirectTo string
	// Intended carries the originally requested path to the login view so
	// it can navigate back after a successful login.
	Intended string
}

// Decide evaluates a navigation target against the session. An
// unauthenticated session gets one CheckAuth attempt to validate a
// persisted token before being redirected to login.
func Decide(ctx context.Context, sess Session, target Route) Decision {
	if target.RequiresAuth {
		if !sess.IsAuthenticated() && !sess.CheckAuth(ctx) {
			return Decision{RedirectTo: "login", Intended: target.Path}
		}
		if target.RequiresProfile && !sess.HasCompleteProfile() {
			return Decision{RedirectTo: "profile"}
		}
	}
	if target.RequiresGuest && sess.IsAuthenticated() {
		return Decision{RedirectTo: "dashboard"}
	}
	return Decision{Allow: true}
}

// HomeRedirect resolves the bare entry point: straight to the dashboard
// when a token is stored, otherwise to login.
func HomeRedirect(hasToken bool) string {
	if hasToken {
		return "dashboard"
	}
	return "login"
}
