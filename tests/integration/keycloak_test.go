//go:build integration
// +build integration

package integration_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jtitra/labkit/pkg/keycloak"
	"github.com/jtitra/labkit/pkg/password"
)

// startKeycloak boots a disposable Keycloak in dev mode and returns its
// base URL. The bootstrap admin is admin/admin.
func startKeycloak(t *testing.T, ctx context.Context) string {
	t.Helper()

	req := testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "quay.io/keycloak/keycloak:26.0",
			ExposedPorts: []string{"8080/tcp"},
			Env: map[string]string{
				"KC_BOOTSTRAP_ADMIN_USERNAME": "admin",
				"KC_BOOTSTRAP_ADMIN_PASSWORD": "admin",
			},
			Cmd: []string{"start-dev"},
			WaitingFor: wait.ForHTTP("/realms/master").
				WithPort("8080/tcp").
				WithStartupTimeout(3 * time.Minute),
		},
		Started: true,
	}

	container, err := testcontainers.GenericContainer(ctx, req)
	require.NoError(t, err)
	testcontainers.CleanupContainer(t, container)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, port.Port())
}

// TestKeycloakUserLifecycle walks the whole student account flow against
// a real Keycloak: admin token, create, login as the student, search,
// duplicate conflict, delete.
func TestKeycloakUserLifecycle(t *testing.T) {
	ctx := context.Background()
	endpoint := startKeycloak(t, ctx)

	client, err := keycloak.New(endpoint)
	require.NoError(t, err)

	tok, err := client.Token(ctx, "admin", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, tok.AccessToken)

	exp, err := tok.Expiry()
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()), "admin token already expired")

	pw, err := password.Generate(12)
	require.NoError(t, err)

	user := keycloak.User{
		Email:     "ada@lab.example.com",
		FirstName: "ada",
		Password:  pw,
	}
	require.NoError(t, client.CreateUser(ctx, tok.AccessToken, "master", user))

	// The account is enabled with a permanent password, so the student
	// can authenticate right away.
	studentTok, err := client.Token(ctx, user.Email, pw)
	require.NoError(t, err)
	assert.NotEmpty(t, studentTok.AccessToken)

	id, err := client.UserID(ctx, tok.AccessToken, "master", user.Email)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	// Creating the same account twice conflicts.
	err = client.CreateUser(ctx, tok.AccessToken, "master", user)
	require.Error(t, err)
	var apiErr *keycloak.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)

	require.NoError(t, client.DeleteUser(ctx, tok.AccessToken, "master", user.Email))

	_, err = client.UserID(ctx, tok.AccessToken, "master", user.Email)
	require.ErrorIs(t, err, keycloak.ErrNotFound)
}
