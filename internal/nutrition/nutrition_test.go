package nutrition

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nutrisuggest/nutri/internal/api"
	"github.com/nutrisuggest/nutri/internal/events"
	"github.com/nutrisuggest/nutri/internal/models"
)

type fakeSession struct {
	user     *models.User
	complete bool
}

func (f *fakeSession) User() *models.User       { return f.user }
func (f *fakeSession) HasCompleteProfile() bool { return f.complete }

type noTokens struct{}

func (noTokens) Token() string { return "" }
func (noTokens) Clear() error  { return nil }

const dailyJSON = `{"success":true,"data":{"nutrition":{
	"date":"2026-08-28",
	"total":{"calories":1200,"protein":80,"carbs":150,"fat":40},
	"by_meal":{
		"breakfast":{"calories":400,"protein":25,"carbs":50,"fat":15},
		"lunch":{"calories":800,"protein":55,"carbs":100,"fat":25},
		"dinner":{"calories":0,"protein":0,"carbs":0,"fat":0},
		"snack":{"calories":0,"protein":0,"carbs":0,"fat":0}
	},
	"targets":{"calories":2000,"protein":150,"carbs":250,"fat":65},
	"progress":{"calories":60,"protein":53.3,"carbs":60,"fat":61.5},
	"intakes":[{"id":7,"user_id":1,"meal_type":"lunch"}]
}}}`

func newTestStore(t *testing.T, handler http.Handler, sess *fakeSession) *Store {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := api.New(srv.URL, srv.URL, noTokens{}, events.NewBus())
	return New(client, sess)
}

func TestFetchTodayReplacesAggregate(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/intakes/nutrition/today" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(dailyJSON))
	})
	store := newTestStore(t, handler, &fakeSession{})

	if !store.FetchToday(context.Background()) {
		t.Fatalf("FetchToday failed: %s", store.Err())
	}
	if got := store.TodayTotal().Calories; got != 1200 {
		t.Fatalf("total calories: got %v, want 1200", got)
	}
	if got := store.TodayProgress().Calories; got != 60 {
		t.Fatalf("progress calories: got %v, want 60", got)
	}
	if got := len(store.TodayIntakes()); got != 1 {
		t.Fatalf("intakes: got %d, want 1", got)
	}
	if got := store.MealDistribution()[models.MealLunch].Calories; got != 800 {
		t.Fatalf("lunch calories: got %v, want 800", got)
	}
}

func TestDefaultsBeforeFirstFetch(t *testing.T) {
	store := newTestStore(t, http.NewServeMux(), &fakeSession{})

	if got := store.TodayTotal(); got != (models.NutritionTotals{}) {
		t.Fatalf("total before fetch: got %+v, want zeros", got)
	}
	if got := store.TodayTargets(); got != DefaultTargets {
		t.Fatalf("targets before fetch: got %+v, want defaults", got)
	}
	if got := store.TodayProgress(); got != (models.NutritionProgress{}) {
		t.Fatalf("progress before fetch: got %+v, want zeros", got)
	}
	if store.MealDistribution() != nil {
		t.Fatal("meal distribution before fetch: want nil")
	}
}

func TestLogQuickFoodRefetchesToday(t *testing.T) {
	todayFetches := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/intakes":
			w.Write([]byte(`{"success":true,"data":{"intake":{"id":9}}}`))
		case r.URL.Path == "/intakes/nutrition/today":
			todayFetches++
			w.Write([]byte(dailyJSON))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})
	store := newTestStore(t, handler, &fakeSession{})

	if !store.LogQuickFood(context.Background(), 3, 150, models.MealLunch) {
		t.Fatalf("LogQuickFood failed: %s", store.Err())
	}
	if todayFetches != 1 {
		t.Fatalf("today re-fetches after mutation: got %d, want 1", todayFetches)
	}
	if store.Daily() == nil {
		t.Fatal("aggregate not replaced after mutation")
	}
}

func TestDeleteIntakeRefetchesToday(t *testing.T) {
	todayFetches := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete && r.URL.Path == "/intakes/7":
			w.Write([]byte(`{"success":true}`))
		case r.URL.Path == "/intakes/nutrition/today":
			todayFetches++
			w.Write([]byte(dailyJSON))
		}
	})
	store := newTestStore(t, handler, &fakeSession{})

	if !store.DeleteIntake(context.Background(), 7) {
		t.Fatalf("DeleteIntake failed: %s", store.Err())
	}
	if todayFetches != 1 {
		t.Fatalf("today re-fetches after delete: got %d, want 1", todayFetches)
	}
}

func TestRecommendationsRequireProfile(t *testing.T) {
	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	for _, sess := range []*fakeSession{
		{},
		{user: &models.User{ID: 1}},
	} {
		store := newTestStore(t, handler, sess)
		if store.FetchRecommendations(context.Background(), models.MealLunch) {
			t.Fatal("recommendations should fail without a complete profile")
		}
		if store.Err() != "User profile is required for recommendations" {
			t.Fatalf("error: got %q", store.Err())
		}
	}
	if called {
		t.Fatal("recommendation request went out despite incomplete profile")
	}
}

func TestFetchRecommendations(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/intakes/nutrition/today":
			w.Write([]byte(dailyJSON))
		case "/recommend/next-meal":
			q := r.URL.Query()
			if q.Get("user_id") != "1" || q.Get("meal_type") != "dinner" {
				t.Errorf("query: %s", r.URL.RawQuery)
			}
			if q.Get("consumed_calories") != "1200" || q.Get("target_calories") != "2000" {
				t.Errorf("consumed/target: %s", r.URL.RawQuery)
			}
			w.Write([]byte(`{"success":true,"data":{
				"remaining_calories":800,"remaining_protein":70,"remaining_carbs":100,"remaining_fat":25,
				"meal_type":"dinner",
				"recommended_foods":[{"id":5,"name":"Salmon","fit_score":0.92,"reasoning":"high protein"}],
				"recommended_recipes":[],
				"nutrition_tips":["Drink water"]
			}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	sess := &fakeSession{user: &models.User{ID: 1}, complete: true}
	store := newTestStore(t, handler, sess)
	store.FetchToday(context.Background())

	if !store.FetchRecommendations(context.Background(), models.MealDinner) {
		t.Fatalf("FetchRecommendations failed: %s", store.Err())
	}
	recs := store.Recommendations()
	if recs == nil || len(recs.RecommendedFoods) != 1 || recs.RecommendedFoods[0].Name != "Salmon" {
		t.Fatalf("recommendations: %+v", recs)
	}
}

func TestRefreshCurrentDayPastDate(t *testing.T) {
	var gotPath string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(dailyJSON))
	})
	store := newTestStore(t, handler, &fakeSession{})

	if !store.FetchDaily(context.Background(), "2026-08-20") {
		t.Fatalf("FetchDaily failed: %s", store.Err())
	}
	if store.SelectedDate() != "2026-08-20" {
		t.Fatalf("selected date: got %s", store.SelectedDate())
	}

	store.RefreshCurrentDay(context.Background())
	if gotPath != "/intakes/nutrition/daily/2026-08-20" {
		t.Fatalf("refresh path: got %s", gotPath)
	}
}
