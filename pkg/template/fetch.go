package template

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultRepo is the GitHub repository holding the shared workshop assets.
const DefaultRepo = "harness-community/field-workshops"

// Common errors returned by the fetcher.
var (
	// ErrNotFound is returned when the asset does not exist in the repo.
	ErrNotFound = errors.New("asset not found")
)

// Fetcher retrieves workshop assets from a GitHub repository's raw
// content endpoint.
type Fetcher struct {
	baseURL    string
	httpClient *http.Client
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithRepo sets the GitHub repository ("owner/name") to fetch assets from.
func WithRepo(repo string) FetcherOption {
	return func(f *Fetcher) {
		f.baseURL = fmt.Sprintf("https://raw.githubusercontent.com/%s/main", repo)
	}
}

// WithBaseURL overrides the raw content base URL entirely. Useful for
// mirrors and for tests.
func WithBaseURL(u string) FetcherOption {
	return func(f *Fetcher) {
		f.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.httpClient = client
	}
}

// NewFetcher creates a Fetcher for the default workshop assets repo.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	WithRepo(DefaultRepo)(f)
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves a repo-relative asset, e.g.
// "assets/misc/vs_code/settings.json".
func (f *Fetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	return f.FetchURL(ctx, f.baseURL+"/"+strings.TrimPrefix(path, "/"))
}

// FetchURL retrieves an asset from an absolute URL. Most callers want
// Fetch; this exists for assets that live outside the workshop repo,
// like the code-server install script.
func (f *Fetcher) FetchURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s returned status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, nil
}

// FetchToFile retrieves a repo-relative asset and writes it to dest with
// the given permissions.
func (f *Fetcher) FetchToFile(ctx context.Context, path, dest string, perm os.FileMode) error {
	data, err := f.Fetch(ctx, path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dest, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return nil
}
