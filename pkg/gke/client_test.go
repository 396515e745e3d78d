package gke

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleKubeconfig = "apiVersion: v1\nkind: Config\nclusters: []\n"

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(server.URL, WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return client
}

func decodePayload(t *testing.T, r *http.Request) map[string]string {
	t.Helper()
	var payload map[string]string
	require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
	return payload
}

func TestNew(t *testing.T) {
	t.Run("requires endpoint", func(t *testing.T) {
		_, err := New("")
		require.ErrorIs(t, err, ErrMissingEndpoint)
	})

	t.Run("trims trailing slash", func(t *testing.T) {
		client, err := New("https://generator.lab.dev/")
		require.NoError(t, err)
		assert.Equal(t, "https://generator.lab.dev", client.baseURL)
	})
}

func TestCreateUser(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/create-user", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		payload := decodePayload(t, r)
		assert.Equal(t, "student1", payload["username"])
		assert.Equal(t, "workshop-user", payload["rolename"])

		_, _ = w.Write([]byte(sampleKubeconfig))
	})

	kubeconfig, err := client.CreateUser(context.Background(), "student1", "workshop-user")
	require.NoError(t, err)
	assert.Equal(t, sampleKubeconfig, string(kubeconfig))
}

func TestCreateUserFailure(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("role not found"))
	})

	_, err := client.CreateUser(context.Background(), "student1", "missing-role")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "role not found")
}

func TestWriteCredentials(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleKubeconfig))
	})

	path := filepath.Join(t.TempDir(), "kubeconfig")
	require.NoError(t, client.WriteCredentials(context.Background(), "student1", "workshop-user", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleKubeconfig, string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestRevokeUser(t *testing.T) {
	var gotPath string
	var gotPayload map[string]string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotPayload = decodePayload(t, r)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.RevokeUser(context.Background(), "student1"))
	assert.Equal(t, "/delete-user", gotPath)
	assert.Equal(t, map[string]string{"username": "student1"}, gotPayload)
}
