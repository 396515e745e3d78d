package chaos

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jtitra/labkit/internal/id"
)

const (
	// DefaultBaseURL is the SaaS platform endpoint.
	DefaultBaseURL = "https://app.harness.io"

	queryPath = "/gateway/chaos/manager/api/query"
)

// Common errors.
var (
	ErrMissingCredentials = errors.New("account id and api key are required")
	ErrNotFound           = errors.New("not found")
)

// Scope identifies the org and project a chaos resource lives in. The
// account comes from the client.
type Scope struct {
	OrgID     string
	ProjectID string
}

// APIError describes a failed chaos API call. GraphQL reports failures in
// the response body, so a 200 with a populated errors list is still an
// APIError.
type APIError struct {
	StatusCode int
	Messages   []string
}

func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("chaos api error: %s", strings.Join(e.Messages, "; "))
	}
	return fmt.Sprintf("chaos api error: status %d", e.StatusCode)
}

// Client talks to the chaos-engineering GraphQL API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	accountID  string
	apiKey     string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different platform endpoint, such as
// a self-managed installation.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a chaos API client scoped to an account.
func New(accountID, apiKey string, opts ...Option) (*Client, error) {
	if accountID == "" || apiKey == "" {
		return nil, ErrMissingCredentials
	}
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		accountID:  accountID,
		apiKey:     apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// run renders the operation document, posts it with the scope identifiers
// attached, and returns the data portion of the response.
func (c *Client) run(ctx context.Context, op operation, scope Scope, value any) (json.RawMessage, error) {
	doc, err := op.document()
	if err != nil {
		return nil, err
	}

	payload := graphQLRequest{
		Query: doc,
		Variables: map[string]any{
			op.paramKey: value,
			"identifiers": map[string]string{
				"accountIdentifier": c.accountID,
				"orgIdentifier":     scope.OrgID,
				"projectIdentifier": scope.ProjectID,
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", op.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+queryPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", op.name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("X-Request-Id", id.Request())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call chaos api: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", op.name, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode}
	}

	var gr graphQLResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", op.name, err)
	}
	if len(gr.Errors) > 0 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		for _, e := range gr.Errors {
			apiErr.Messages = append(apiErr.Messages, e.Message)
		}
		return nil, apiErr
	}
	return gr.Data, nil
}
