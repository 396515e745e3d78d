package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jtitra/labkit/internal/id"
)

// DefaultBaseURL is the Harness SaaS endpoint.
const DefaultBaseURL = "https://app.harness.io"

const statusSuccess = "SUCCESS"

// Common errors.
var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrMissingCredentials is returned when the client is built without
	// an account ID or API key.
	ErrMissingCredentials = errors.New("account ID and API key are required")
)

// Client is an HTTP client for the Harness platform API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	accountID  string
	apiKey     string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, for self-managed installs and
// tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a platform client scoped to one account.
func New(accountID, apiKey string, opts ...Option) (*Client, error) {
	if accountID == "" || apiKey == "" {
		return nil, ErrMissingCredentials
	}
	c := &Client{
		baseURL:   DefaultBaseURL,
		accountID: accountID,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// APIError is a failed platform call: a non-2xx response or a response
// envelope whose status is not SUCCESS.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("harness api: %s (status %d)", e.Message, e.StatusCode)
	}
	if e.Status != "" {
		return fmt.Sprintf("harness api: status %s (http %d)", e.Status, e.StatusCode)
	}
	return fmt.Sprintf("harness api: request failed: status %d", e.StatusCode)
}

// envelope is the platform's standard response wrapper.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// HTTP helpers

func (c *Client) post(ctx context.Context, path string, query url.Values, body any) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.url(path, query), &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) postRaw(ctx context.Context, path string, query url.Values, contentType string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.url(path, query), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(req)
}

func (c *Client) delete(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "DELETE", c.url(path, query), nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) url(path string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	query.Set("accountIdentifier", c.accountID)
	return c.baseURL + path + "?" + query.Encode()
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("X-Request-Id", id.Request())
	return c.httpClient.Do(req)
}

// decodeEnvelope reads a platform response and fails unless it is 2xx with
// a SUCCESS status.
func (c *Client) decodeEnvelope(resp *http.Response) (*envelope, error) {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &APIError{StatusCode: resp.StatusCode}
		}
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if env.Status != statusSuccess {
		return nil, &APIError{StatusCode: resp.StatusCode, Status: env.Status, Message: env.Message}
	}
	return &env, nil
}
