package template

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFetcher(t *testing.T, handler http.HandlerFunc) *Fetcher {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewFetcher(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
}

func TestNewFetcher(t *testing.T) {
	f := NewFetcher()
	assert.Equal(t, "https://raw.githubusercontent.com/harness-community/field-workshops/main", f.baseURL)

	f = NewFetcher(WithRepo("acme/labs"))
	assert.Equal(t, "https://raw.githubusercontent.com/acme/labs/main", f.baseURL)
}

func TestFetch(t *testing.T) {
	var gotPath string
	f := testFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"workbench.colorTheme": "Default Dark+"}`))
	})

	data, err := f.Fetch(context.Background(), "assets/misc/vs_code/settings.json")
	require.NoError(t, err)

	assert.Equal(t, "/assets/misc/vs_code/settings.json", gotPath)
	assert.Contains(t, string(data), "colorTheme")
}

func TestFetchErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := testFetcher(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := f.Fetch(context.Background(), "assets/missing.html")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("server error", func(t *testing.T) {
		f := testFetcher(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := f.Fetch(context.Background(), "assets/misc/settings.json")
		require.ErrorContains(t, err, "status 502")
	})
}

func TestFetchURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("#!/bin/sh\necho install\n"))
	}))
	defer server.Close()

	f := NewFetcher(WithHTTPClient(server.Client()))
	data, err := f.FetchURL(context.Background(), server.URL+"/install.sh")
	require.NoError(t, err)
	assert.Contains(t, string(data), "echo install")
}

func TestFetchToFile(t *testing.T) {
	f := testFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("unit content"))
	})

	dest := filepath.Join(t.TempDir(), "code-server.service")
	require.NoError(t, f.FetchToFile(context.Background(), "assets/misc/vs_code/code-server.service", dest, 0o644))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "unit content", string(data))

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}
