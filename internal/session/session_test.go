package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nutrisuggest/nutri/internal/api"
	"github.com/nutrisuggest/nutri/internal/events"
)

// memTokens satisfies both the api and session token store interfaces.
type memTokens struct {
	token string
}

func (m *memTokens) Token() string { return m.token }
func (m *memTokens) Set(token string) error {
	m.token = token
	return nil
}
func (m *memTokens) Clear() error {
	m.token = ""
	return nil
}

const userJSON = `{"id":1,"email":"eve@example.com","profile":{"user_id":1,"age":30,"gender":"female","height_cm":170,"weight_kg":65,"activity_level":"moderate","goal":"maintain"}}`

func newTestStore(t *testing.T, handler http.Handler) (*Store, *memTokens, *events.Bus) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := &memTokens{}
	bus := events.NewBus()
	client := api.New(srv.URL, srv.URL, tokens, bus)
	return New(client, tokens, bus), tokens, bus
}

func TestLoginSuccess(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"data":{"user":` + userJSON + `,"token":"tok_1"}}`))
	})
	store, tokens, _ := newTestStore(t, handler)

	if !store.Login(context.Background(), api.LoginCredentials{Email: "eve@example.com", Password: "pw"}) {
		t.Fatalf("login failed: %s", store.Err())
	}
	if !store.IsAuthenticated() {
		t.Fatal("IsAuthenticated after login: got false")
	}
	if tokens.token != "tok_1" {
		t.Fatalf("persisted token: got %q, want tok_1", tokens.token)
	}
	if store.Err() != "" {
		t.Fatalf("error after success: got %q, want empty", store.Err())
	}
}

func TestLoginRejected(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"error":"Invalid credentials"}`))
	})
	store, _, _ := newTestStore(t, handler)

	if store.Login(context.Background(), api.LoginCredentials{Email: "eve@example.com", Password: "nope"}) {
		t.Fatal("login should fail")
	}
	if store.IsAuthenticated() {
		t.Fatal("IsAuthenticated after failed login: got true")
	}
	if store.Err() != "Invalid credentials" {
		t.Fatalf("error message: got %q, want Invalid credentials", store.Err())
	}
}

func TestLoginUnsuccessfulEnvelope(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false}`))
	})
	store, _, _ := newTestStore(t, handler)

	if store.Login(context.Background(), api.LoginCredentials{}) {
		t.Fatal("login should fail on unsuccessful envelope")
	}
	if store.Err() != "Login failed. Please check your credentials." {
		t.Fatalf("error message: got %q", store.Err())
	}
}

func TestCheckAuthWithoutToken(t *testing.T) {
	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	store, _, _ := newTestStore(t, handler)

	if store.CheckAuth(context.Background()) {
		t.Fatal("CheckAuth with no stored token: got true")
	}
	if called {
		t.Fatal("CheckAuth hit the network without a token")
	}
}

func TestCheckAuthValidToken(t *testing.T) {
	meCalls := 0
	loginCalls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/me":
			meCalls++
			if r.Header.Get("Authorization") != "Bearer tok_persisted" {
				t.Errorf("authorization: got %q", r.Header.Get("Authorization"))
			}
			w.Write([]byte(`{"success":true,"data":{"user":` + userJSON + `}}`))
		case "/auth/login":
			loginCalls++
		}
	})
	store, tokens, _ := newTestStore(t, handler)
	tokens.token = "tok_persisted"

	if !store.CheckAuth(context.Background()) {
		t.Fatal("CheckAuth with valid token: got false")
	}
	if !store.IsAuthenticated() {
		t.Fatal("IsAuthenticated after CheckAuth: got false")
	}
	if meCalls != 1 || loginCalls != 0 {
		t.Fatalf("requests: me=%d login=%d, want me=1 login=0", meCalls, loginCalls)
	}
}

func TestCheckAuthStaleTokenClearsSession(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"error":"token expired"}`))
	})
	store, tokens, _ := newTestStore(t, handler)
	tokens.token = "stale"

	if store.CheckAuth(context.Background()) {
		t.Fatal("CheckAuth with stale token: got true")
	}
	if tokens.token != "" {
		t.Fatalf("persisted token after failed CheckAuth: got %q, want empty", tokens.token)
	}
	if store.Token() != "" || store.User() != nil {
		t.Fatal("session not cleared after failed CheckAuth")
	}
}

func TestLogout(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"user":` + userJSON + `,"token":"tok_1"}}`))
	})
	store, tokens, _ := newTestStore(t, handler)

	store.Login(context.Background(), api.LoginCredentials{})
	store.Logout()

	if store.IsAuthenticated() {
		t.Fatal("IsAuthenticated after logout: got true")
	}
	if tokens.token != "" {
		t.Fatalf("persisted token after logout: got %q", tokens.token)
	}
}

func TestUnauthorizedEventClearsSession(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"user":` + userJSON + `,"token":"tok_1"}}`))
	})
	store, tokens, bus := newTestStore(t, handler)

	store.Login(context.Background(), api.LoginCredentials{})
	if !store.IsAuthenticated() {
		t.Fatal("expected authenticated session before event")
	}

	bus.PublishUnauthorized()

	if store.IsAuthenticated() {
		t.Fatal("IsAuthenticated after unauthorized event: got true")
	}
	if tokens.token != "" {
		t.Fatalf("persisted token after unauthorized event: got %q", tokens.token)
	}
}

func TestHasCompleteProfile(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"all six fields", userJSON, true},
		{"missing goal", `{"id":1,"email":"e","profile":{"user_id":1,"age":30,"gender":"female","height_cm":170,"weight_kg":65,"activity_level":"moderate"}}`, false},
		{"no profile", `{"id":1,"email":"e"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":true,"data":{"user":` + tt.body + `,"token":"t"}}`))
			})
			store, _, _ := newTestStore(t, handler)
			store.Login(context.Background(), api.LoginCredentials{})
			if got := store.HasCompleteProfile(); got != tt.want {
				t.Fatalf("HasCompleteProfile: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransientErrorExpires(t *testing.T) {
	store, _, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	store.errTTL = 20 * time.Millisecond

	store.SetError("boom")
	if store.Err() != "boom" {
		t.Fatalf("error: got %q, want boom", store.Err())
	}

	deadline := time.Now().Add(time.Second)
	for store.Err() != "" {
		if time.Now().After(deadline) {
			t.Fatal("transient error did not expire")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestTransientErrorSuperseded(t *testing.T) {
	store, _, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	store.errTTL = 20 * time.Millisecond

	store.SetError("first")
	store.errTTL = time.Hour
	store.SetError("second")

	// The pending clear for "first" fires but must not wipe "second".
	time.Sleep(60 * time.Millisecond)
	if got := store.Err(); got != "second" {
		t.Fatalf("error after supersede: got %q, want second", got)
	}
}

func TestUpdateProfile(t *testing.T) {
	updated := `{"id":1,"email":"eve@example.com","profile":{"user_id":1,"age":31,"gender":"female","height_cm":170,"weight_kg":64,"activity_level":"active","goal":"maintain"}}`
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			w.Write([]byte(`{"success":true,"data":{"user":` + userJSON + `,"token":"tok_1"}}`))
		case "/auth/profile":
			if r.Method != http.MethodPut {
				t.Errorf("method: got %s, want PUT", r.Method)
			}
			w.Write([]byte(`{"success":true,"data":{"user":` + updated + `}}`))
		}
	})
	store, _, _ := newTestStore(t, handler)

	store.Login(context.Background(), api.LoginCredentials{})
	age := 31
	if !store.UpdateProfile(context.Background(), api.ProfileUpdate{Age: &age}) {
		t.Fatalf("update profile failed: %s", store.Err())
	}
	if got := store.Profile(); got == nil || got.Age == nil || *got.Age != 31 {
		t.Fatalf("profile after update: %+v", got)
	}
}

func TestDeleteAccount(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			w.Write([]byte(`{"success":true,"data":{"user":` + userJSON + `,"token":"tok_1"}}`))
		case "/auth/delete-account":
			w.Write([]byte(`{"success":true}`))
		}
	})
	store, tokens, _ := newTestStore(t, handler)

	store.Login(context.Background(), api.LoginCredentials{})
	if !store.DeleteAccount(context.Background()) {
		t.Fatalf("delete account failed: %s", store.Err())
	}
	if store.IsAuthenticated() || tokens.token != "" {
		t.Fatal("session not cleared after account deletion")
	}
}
