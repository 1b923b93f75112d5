package appconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func setTestHome(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	os.Unsetenv("NUTRI_TOKEN")
	os.Unsetenv("NUTRI_API_URL")
	os.Unsetenv("NUTRI_RECOMMENDATION_URL")
	return tmp
}

func TestTokenAbsent(t *testing.T) {
	setTestHome(t)

	if got := Token(); got != "" {
		t.Fatalf("token with no auth.json: got %q, want empty", got)
	}
	if HasToken() {
		t.Fatal("HasToken with no auth.json: got true, want false")
	}
}

func TestSetTokenRoundTrip(t *testing.T) {
	setTestHome(t)

	if err := SetToken("tok_abc123"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if got := Token(); got != "tok_abc123" {
		t.Fatalf("token after set: got %q, want tok_abc123", got)
	}
	if !HasToken() {
		t.Fatal("HasToken after set: got false, want true")
	}
}

func TestSetTokenPreservesIdentity(t *testing.T) {
	setTestHome(t)

	if err := SaveCredentials(&Credentials{Token: "old", UserID: 7, Email: "a@b.c"}); err != nil {
		t.Fatalf("save credentials: %v", err)
	}
	if err := SetToken("new"); err != nil {
		t.Fatalf("set token: %v", err)
	}

	creds, err := LoadCredentials()
	if err != nil {
		t.Fatalf("load credentials: %v", err)
	}
	if creds.Token != "new" {
		t.Fatalf("token: got %q, want new", creds.Token)
	}
	if creds.UserID != 7 || creds.Email != "a@b.c" {
		t.Fatalf("identity fields not preserved: %+v", creds)
	}
}

func TestClearToken(t *testing.T) {
	home := setTestHome(t)

	if err := SetToken("tok"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if err := ClearToken(); err != nil {
		t.Fatalf("clear token: %v", err)
	}
	if got := Token(); got != "" {
		t.Fatalf("token after clear: got %q, want empty", got)
	}
	if _, err := os.Stat(filepath.Join(home, ".config", "nutri", "auth.json")); !os.IsNotExist(err) {
		t.Fatalf("auth.json still present after clear: %v", err)
	}
	// Clearing twice is a no-op, not an error.
	if err := ClearToken(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestTokenEnvOverride(t *testing.T) {
	setTestHome(t)
	t.Setenv("NUTRI_TOKEN", "env_tok")

	if err := SetToken("file_tok"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if got := Token(); got != "env_tok" {
		t.Fatalf("env override: got %q, want env_tok", got)
	}
}

func TestAPIURLDefault(t *testing.T) {
	setTestHome(t)

	if got := APIURL(); got != "http://localhost:3001/api" {
		t.Fatalf("default api url: got %q", got)
	}
	if got := RecommendationURL(); got != "http://localhost:8000/api" {
		t.Fatalf("default recommendation url: got %q", got)
	}
}

func TestAPIURLFromConfig(t *testing.T) {
	setTestHome(t)

	if err := SaveConfig(&Config{APIURL: "https://api.example.com/api"}); err != nil {
		t.Fatalf("save config: %v", err)
	}
	if got := APIURL(); got != "https://api.example.com/api" {
		t.Fatalf("config api url: got %q", got)
	}
}

func TestAPIURLEnvOverridesConfig(t *testing.T) {
	setTestHome(t)
	t.Setenv("NUTRI_API_URL", "https://env.example.com/api")

	if err := SaveConfig(&Config{APIURL: "https://cfg.example.com/api"}); err != nil {
		t.Fatalf("save config: %v", err)
	}
	if got := APIURL(); got != "https://env.example.com/api" {
		t.Fatalf("env override: got %q", got)
	}
}
