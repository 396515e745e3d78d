package gke

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Common errors returned by the GKE generator client.
var (
	// ErrMissingEndpoint is returned when no generator URL is configured.
	ErrMissingEndpoint = errors.New("missing generator endpoint")
)

// APIError represents an error response from the generator service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("generator returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("generator returned status %d", e.StatusCode)
}

// Client mints and revokes per-student kubeconfigs through a GKE
// credential generator service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// New creates a client for the generator service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, ErrMissingEndpoint
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CreateUser asks the generator to create a namespace and user bound to
// the given cluster role. The returned bytes are a ready-to-use
// kubeconfig.
func (c *Client) CreateUser(ctx context.Context, username, role string) ([]byte, error) {
	payload := map[string]string{
		"username": username,
		"rolename": role,
	}
	return c.post(ctx, "/create-user", payload)
}

// WriteCredentials creates a user and writes the kubeconfig to path.
func (c *Client) WriteCredentials(ctx context.Context, username, role, path string) error {
	kubeconfig, err := c.CreateUser(ctx, username, role)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, kubeconfig, 0o600); err != nil {
		return fmt.Errorf("failed to write kubeconfig: %w", err)
	}
	return nil
}

// RevokeUser asks the generator to tear down a student's namespace and
// user.
func (c *Client) RevokeUser(ctx context.Context, username string) error {
	_, err := c.post(ctx, "/delete-user", map[string]string{"username": username})
	return err
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(data)),
		}
	}
	return data, nil
}
