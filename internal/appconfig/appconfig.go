// Package appconfig persists client configuration and credentials under
// ~/.config/nutri. The bearer token has no client-side expiry: a 401 from
// the server is the only staleness signal.
package appconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	defaultAPIURL            = "http://localhost:3001/api"
	defaultRecommendationURL = "http://localhost:8000/api"
)

// Config is the global client config stored at ~/.config/nutri/config.json.
type Config struct {
	APIURL            string `json:"api_url,omitempty"`
	RecommendationURL string `json:"recommendation_url,omitempty"`
}

// Credentials stores authentication state at ~/.config/nutri/auth.json.
type Credentials struct {
	Token  string `json:"token"`
	UserID int    `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
}

// ConfigDir returns ~/.config/nutri, creating it if necessary.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	dir := filepath.Join(home, ".config", "nutri")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return dir, nil
}

// LoadConfig reads the global config from ~/.config/nutri/config.json.
func LoadConfig() (*Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig writes the global config to ~/.config/nutri/config.json.
func SaveConfig(cfg *Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// LoadCredentials reads credentials from ~/.config/nutri/auth.json.
// Returns nil (not an error) when no credentials are stored.
func LoadCredentials() (*Credentials, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, "auth.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// SaveCredentials writes credentials to ~/.config/nutri/auth.json (0600 perms).
func SaveCredentials(creds *Credentials) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "auth.json"), data, 0600)
}

// ClearCredentials removes the auth.json file.
func ClearCredentials() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(dir, "auth.json"))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Token returns the stored bearer token, or "" when absent.
// Priority: NUTRI_TOKEN env > auth.json.
func Token() string {
	if v := os.Getenv("NUTRI_TOKEN"); v != "" {
		return v
	}
	creds, err := LoadCredentials()
	if err == nil && creds != nil {
		return creds.Token
	}
	return ""
}

// SetToken persists the bearer token, preserving other credential fields.
func SetToken(token string) error {
	creds, err := LoadCredentials()
	if err != nil || creds == nil {
		creds = &Credentials{}
	}
	creds.Token = token
	return SaveCredentials(creds)
}

// ClearToken drops the persisted token (and the rest of the credentials
// with it; the token is the only thing that makes them useful).
func ClearToken() error {
	return ClearCredentials()
}

// HasToken reports whether a bearer token is available.
func HasToken() bool {
	return Token() != ""
}

// APIURL returns the primary API base URL.
// Priority: NUTRI_API_URL env > config.json > default.
func APIURL() string {
	if v := os.Getenv("NUTRI_API_URL"); v != "" {
		return v
	}
	cfg, err := LoadConfig()
	if err == nil && cfg.APIURL != "" {
		return cfg.APIURL
	}
	return defaultAPIURL
}

// RecommendationURL returns the recommendation service base URL.
// Priority: NUTRI_RECOMMENDATION_URL env > config.json > default.
func RecommendationURL() string {
	if v := os.Getenv("NUTRI_RECOMMENDATION_URL"); v != "" {
		return v
	}
	cfg, err := LoadConfig()
	if err == nil && cfg.RecommendationURL != "" {
		return cfg.RecommendationURL
	}
	return defaultRecommendationURL
}
