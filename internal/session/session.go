// Package session holds the authenticated user and token and owns the
// login/register/logout/profile flows. Operations report success as a bool
// and surface failures as a transient user-facing message; they never
// propagate transport errors to callers.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/nutrisuggest/nutri/internal/api"
	"github.com/nutrisuggest/nutri/internal/events"
	"github.com/nutrisuggest/nutri/internal/models"
)

const defaultErrorTTL = 5 * time.Second

// TokenStore persists the bearer token across invocations.
type TokenStore interface {
	Token() string
	Set(token string) error
	Clear() error
}

// Store is the auth session state container.
type Store struct {
	client *api.Client
	tokens TokenStore

	mu      sync.Mutex
	user    *models.User
	token   string
	loading bool
	err     string

	errTTL time.Duration
}

// New creates a session store and subscribes it to unauthorized events so
// transport-level auth failures clear the session without a direct call
// dependency.
func New(client *api.Client, tokens TokenStore, bus *events.Bus) *Store {
	s := &Store{
		client: client,
		tokens: tokens,
		errTTL: defaultErrorTTL,
	}
	bus.OnUnauthorized(func() { s.clearAuth() })
	return s
}

// User returns the current user, or nil when anonymous.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Token returns the in-memory token, or "" when anonymous.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Err returns the current transient error message, or "".
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Loading reports whether an auth operation is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// IsAuthenticated reports whether both a token and a user are present.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.user != nil
}

// Profile returns the current user's profile, or nil.
func (s *Store) Profile() *models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	return s.user.Profile
}

// HasCompleteProfile reports whether all six physiological profile fields
// are filled in.
func (s *Store) HasCompleteProfile() bool {
	return s.Profile().Complete()
}

// SetError sets a transient error message that auto-clears after 5 seconds
// unless a newer message supersedes it first.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	s.err = msg
	ttl := s.errTTL
	s.mu.Unlock()

	if msg == "" {
		return
	}
	time.AfterFunc(ttl, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// A pending clear for a superseded message is a no-op.
		if s.err == msg {
			s.err = ""
		}
	})
}

func (s *Store) setUser(user *models.User, token string) {
	s.mu.Lock()
	s.user = user
	s.token = token
	s.err = ""
	s.mu.Unlock()
	_ = s.tokens.Set(token)
}

func (s *Store) clearAuth() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.err = ""
	s.mu.Unlock()
	_ = s.tokens.Clear()
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// Login authenticates with credentials. On success the user and token are
// stored (token persisted) and any error cleared.
func (s *Store) Login(ctx context.Context, creds api.LoginCredentials) bool {
	s.setLoading(true)
	defer s.setLoading(false)
	s.SetError("")

	resp, err := s.client.Login(ctx, creds)
	if err != nil {
		s.SetError(err.Error())
		return false
	}
	if !resp.Success || resp.Data == nil {
		s.SetError("Login failed. Please check your credentials.")
		return false
	}
	s.setUser(&resp.Data.User, resp.Data.Token)
	return true
}

// Register creates an account and logs it in.
func (s *Store) Register(ctx context.Context, data api.RegisterData) bool {
	s.setLoading(true)
	defer s.setLoading(false)
	s.SetError("")

	resp, err := s.client.Register(ctx, data)
	if err != nil {
		s.SetError(err.Error())
		return false
	}
	if !resp.Success || resp.Data == nil {
		s.SetError("Registration failed. Please try again.")
		return false
	}
	s.setUser(&resp.Data.User, resp.Data.Token)
	return true
}

// Logout unconditionally clears the session and the persisted token.
func (s *Store) Logout() {
	s.clearAuth()
}

// CheckAuth reconciles a persisted token with the server: absent token
// means anonymous; a present token is set optimistically and validated by
// fetching the current user. Any failure clears the whole session.
func (s *Store) CheckAuth(ctx context.Context) bool {
	stored := s.tokens.Token()
	if stored == "" {
		s.clearAuth()
		return false
	}

	s.mu.Lock()
	s.token = stored
	s.mu.Unlock()

	resp, err := s.client.CurrentUser(ctx)
	if err != nil || !resp.Success || resp.Data == nil {
		s.clearAuth()
		return false
	}

	s.mu.Lock()
	s.user = &resp.Data.User
	s.mu.Unlock()
	return true
}

// UpdateProfile applies a partial profile update to the current user.
func (s *Store) UpdateProfile(ctx context.Context, update api.ProfileUpdate) bool {
	s.setLoading(true)
	defer s.setLoading(false)
	s.SetError("")

	resp, err := s.client.UpdateProfile(ctx, update)
	if err != nil {
		s.SetError(err.Error())
		return false
	}
	if !resp.Success || resp.Data == nil {
		s.SetError("Failed to update profile. Please try again.")
		return false
	}

	s.mu.Lock()
	s.user = &resp.Data.User
	s.mu.Unlock()
	return true
}

// RefreshUser re-fetches the current user, keeping the session as-is on
// failure.
func (s *Store) RefreshUser(ctx context.Context) {
	if !s.IsAuthenticated() {
		return
	}
	resp, err := s.client.CurrentUser(ctx)
	if err != nil || !resp.Success || resp.Data == nil {
		return
	}
	s.mu.Lock()
	s.user = &resp.Data.User
	s.mu.Unlock()
}

// CalculateTargets asks the server to derive daily targets from profile
// inputs. Returns nil on any failure.
func (s *Store) CalculateTargets(ctx context.Context, req api.TargetsRequest) *api.ComputedTargets {
	resp, err := s.client.CalculateTargets(ctx, req)
	if err != nil || !resp.Success || resp.Data == nil {
		return nil
	}
	targets := resp.Data.Targets
	return &targets
}

// DeleteAccount permanently removes the account and clears the session.
func (s *Store) DeleteAccount(ctx context.Context) bool {
	s.setLoading(true)
	defer s.setLoading(false)
	s.SetError("")

	resp, err := s.client.DeleteAccount(ctx)
	if err != nil {
		s.SetError(err.Error())
		return false
	}
	if !resp.Success {
		s.SetError("Failed to delete account. Please try again.")
		return false
	}
	s.clearAuth()
	return true
}
