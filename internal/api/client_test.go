package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/nutrisuggest/nutri/internal/events"
)

// fakeTokens is an in-memory TokenStore.
type fakeTokens struct {
	token   string
	cleared int
}

func (f *fakeTokens) Token() string { return f.token }
func (f *fakeTokens) Clear() error {
	f.token = ""
	f.cleared++
	return nil
}

func newTestClient(t *testing.T, handler http.Handler, token string) (*Client, *fakeTokens, *events.Bus) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	tokens := &fakeTokens{token: token}
	bus := events.NewBus()
	return New(srv.URL, srv.URL, tokens, bus), tokens, bus
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"data":{"user":{"id":1,"email":"a@b.c"}}}`))
	})
	client, _, _ := newTestClient(t, handler, "tok123")

	if _, err := client.CurrentUser(context.Background()); err != nil {
		t.Fatalf("current user: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Fatalf("authorization header: got %q, want Bearer tok123", gotAuth)
	}
}

func TestNoTokenNoHeader(t *testing.T) {
	var gotAuth string
	var hasHeader bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasHeader = r.Header["Authorization"]
		w.Write([]byte(`{"success":true}`))
	})
	client, _, _ := newTestClient(t, handler, "")

	if _, err := client.Login(context.Background(), LoginCredentials{Email: "a@b.c", Password: "pw"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if hasHeader {
		t.Fatalf("unauthenticated request carried Authorization %q", gotAuth)
	}
}

func TestUnauthorizedClearsTokenAndPublishesOnce(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"error":"token expired"}`))
	})
	client, tokens, bus := newTestClient(t, handler, "stale")

	unauthorized := 0
	bus.OnUnauthorized(func() { unauthorized++ })

	_, err := client.CurrentUser(context.Background())
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if tokens.token != "" || tokens.cleared != 1 {
		t.Fatalf("token store after 401: token=%q cleared=%d", tokens.token, tokens.cleared)
	}
	if unauthorized != 1 {
		t.Fatalf("unauthorized events: got %d, want 1", unauthorized)
	}
}

func TestForbiddenLeavesTokenAlone(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"success":false,"error":"not yours"}`))
	})
	client, tokens, bus := newTestClient(t, handler, "tok")

	unauthorized := 0
	bus.OnUnauthorized(func() { unauthorized++ })

	_, err := client.DeleteFood(context.Background(), 4)
	if err == nil {
		t.Fatal("expected error for 403 response")
	}
	if tokens.token != "tok" || tokens.cleared != 0 {
		t.Fatalf("token store after 403: token=%q cleared=%d", tokens.token, tokens.cleared)
	}
	if unauthorized != 0 {
		t.Fatalf("unauthorized events after 403: got %d, want 0", unauthorized)
	}
	if got := err.Error(); got != "not yours" {
		t.Fatalf("normalized message: got %q, want not yours", got)
	}
}

func TestNetworkFailurePublishesEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	tokens := &fakeTokens{}
	bus := events.NewBus()
	var netMsg string
	bus.OnNetworkError(func(ev events.NetworkError) { netMsg = ev.Message })

	client := New(srv.URL, srv.URL, tokens, bus)
	_, err := client.PopularFoods(context.Background())
	if err == nil {
		t.Fatal("expected error for unreachable server")
	}
	if !IsNetworkError(err) {
		t.Fatalf("IsNetworkError: got false for %v", err)
	}
	if netMsg == "" {
		t.Fatal("network error event not published")
	}
}

func TestServerErrorReturnedToCaller(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"message":"database on fire"}`))
	})
	client, _, _ := newTestClient(t, handler, "tok")

	_, err := client.TodayNutrition(context.Background())
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if got := err.Error(); got != "database on fire" {
		t.Fatalf("normalized message: got %q, want database on fire", got)
	}
}

func TestEndpointPathAndMethod(t *testing.T) {
	var gotMethod, gotPath string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"success":true}`))
	})
	client, _, _ := newTestClient(t, handler, "tok")

	if _, err := client.RemoveIntakeItem(context.Background(), 12, 34); err != nil {
		t.Fatalf("remove intake item: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/intakes/12/items/34" {
		t.Fatalf("request: got %s %s, want DELETE /intakes/12/items/34", gotMethod, gotPath)
	}
}

func TestSearchFoodsQueryEncoding(t *testing.T) {
	var gotQuery string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"success":true,"data":{"foods":[],"pagination":{"page":1,"limit":10,"total":0,"pages":0}}}`))
	})
	client, _, _ := newTestClient(t, handler, "tok")

	_, err := client.SearchFoods(context.Background(), FoodSearchParams{Query: "oat milk", Page: 2, Limit: 10, CreatedByMe: true})
	if err != nil {
		t.Fatalf("search foods: %v", err)
	}
	q, err := url.ParseQuery(gotQuery)
	if err != nil {
		t.Fatalf("parse query %q: %v", gotQuery, err)
	}
	if q.Get("search") != "oat milk" || q.Get("page") != "2" || q.Get("created_by_me") != "true" || q.Get("show_public") != "false" {
		t.Fatalf("query params: got %v", q)
	}
}

func TestFoodListBareArrayShape(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[{"id":1,"name":"Oats","calories_per_100g":380,"protein_per_100g":13,"carbs_per_100g":68,"fat_per_100g":7}]}`))
	})
	client, _, _ := newTestClient(t, handler, "tok")

	resp, err := client.PopularFoods(context.Background())
	if err != nil {
		t.Fatalf("popular foods: %v", err)
	}
	if resp.Data == nil || len(resp.Data.Foods) != 1 || resp.Data.Foods[0].Name != "Oats" {
		t.Fatalf("bare-array list: got %+v", resp.Data)
	}
	if resp.Data.Pagination != nil {
		t.Fatalf("bare-array list should have nil pagination, got %+v", resp.Data.Pagination)
	}
}

func TestRecommendationScopeUsed(t *testing.T) {
	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("primary API hit for a recommendation call")
	}))
	t.Cleanup(apiSrv.Close)

	var gotPath string
	recSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"success":true,"data":{"remaining_calories":800,"meal_type":"lunch","recommended_foods":[],"recommended_recipes":[],"nutrition_tips":[]}}`))
	}))
	t.Cleanup(recSrv.Close)

	client := New(apiSrv.URL, recSrv.URL, &fakeTokens{token: "tok"}, events.NewBus())
	resp, err := client.NextMealRecommendations(context.Background(), NextMealParams{UserID: 1, TargetCalories: 2000, MealType: "lunch"})
	if err != nil {
		t.Fatalf("next meal: %v", err)
	}
	if gotPath != "/recommend/next-meal" {
		t.Fatalf("path: got %q, want /recommend/next-meal", gotPath)
	}
	if resp.Data == nil || resp.Data.RemainingCalories != 800 {
		t.Fatalf("response data: got %+v", resp.Data)
	}
}
