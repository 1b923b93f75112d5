// Package api is the HTTP client for the NutriSuggest API and its
// recommendation scoring service. Every outgoing request carries the stored
// bearer token when one exists; response errors are classified by status
// code, with 401 clearing the token and notifying subscribers via the bus.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nutrisuggest/nutri/internal/events"
)

const (
	apiTimeout            = 10 * time.Second
	recommendationTimeout = 15 * time.Second

	networkErrorMessage = "Network connection failed. Please check your internet connection."
)

// TokenStore supplies and invalidates the persisted bearer token.
type TokenStore interface {
	Token() string
	Clear() error
}

// scope is one base URL plus its transport.
type scope struct {
	baseURL string
	http    *http.Client
}

// Client wraps the primary API and the recommendation API behind one type.
type Client struct {
	api    scope
	rec    scope
	tokens TokenStore
	bus    *events.Bus
}

// New creates a client for the given base URLs. The bus receives
// unauthorized and network-error notifications; it must not be nil.
func New(apiURL, recommendationURL string, tokens TokenStore, bus *events.Bus) *Client {
	return &Client{
		api:    scope{baseURL: apiURL, http: &http.Client{Timeout: apiTimeout}},
		rec:    scope{baseURL: recommendationURL, http: &http.Client{Timeout: recommendationTimeout}},
		tokens: tokens,
		bus:    bus,
	}
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.doRequest(ctx, c.api, http.MethodGet, path, nil, result)
}

func (c *Client) post(ctx context.Context, path string, body, result any) error {
	return c.doRequest(ctx, c.api, http.MethodPost, path, body, result)
}

func (c *Client) put(ctx context.Context, path string, body, result any) error {
	return c.doRequest(ctx, c.api, http.MethodPut, path, body, result)
}

func (c *Client) delete(ctx context.Context, path string, result any) error {
	return c.doRequest(ctx, c.api, http.MethodDelete, path, nil, result)
}

func (c *Client) recGet(ctx context.Context, path string, result any) error {
	return c.doRequest(ctx, c.rec, http.MethodGet, path, nil, result)
}

func (c *Client) recPost(ctx context.Context, path string, body, result any) error {
	return c.doRequest(ctx, c.rec, http.MethodPost, path, body, result)
}

func (c *Client) doRequest(ctx context.Context, s scope, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		// No response at all: connectivity problem, not a server verdict.
		c.bus.PublishNetworkError(events.NetworkError{Message: networkErrorMessage})
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return c.classifyError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}

// classifyError turns an error response into a *StatusError. A 401 clears
// the stored token and notifies subscribers exactly once per response.
func (c *Client) classifyError(status int, body []byte) error {
	se := &StatusError{Status: status}
	// Body parse failure is fine; the status alone still classifies.
	_ = json.Unmarshal(body, &se.Body)

	if status == http.StatusUnauthorized {
		_ = c.tokens.Clear()
		c.bus.PublishUnauthorized()
	}

	return se
}
