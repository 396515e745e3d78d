package keycloak

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// User describes a workshop attendee account. The email doubles as the
// username; the last name is fixed so rosters sort together.
type User struct {
	Email     string
	FirstName string
	Password  string
}

// CreateUser provisions an enabled, pre-verified user in the realm with a
// permanent password.
func (c *Client) CreateUser(ctx context.Context, token, realm string, user User) error {
	payload := map[string]any{
		"email":           user.Email,
		"username":        user.Email,
		"firstName":       user.FirstName,
		"lastName":        "Student",
		"emailVerified":   true,
		"enabled":         true,
		"requiredActions": []string{},
		"groups":          []string{},
		"credentials": []map[string]any{{
			"type":      "password",
			"value":     user.Password,
			"temporary": false,
		}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	path := "/admin/realms/" + url.PathEscape(realm) + "/users"
	resp, err := c.do(ctx, http.MethodPost, path, token, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create user %q: %w", user.Email, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("failed to create user %q: %w", user.Email, apiError(resp))
	}
	return nil
}

// UserID searches the realm and returns the id of the first match.
// Returns ErrNotFound when the search comes back empty.
func (c *Client) UserID(ctx context.Context, token, realm, search string) (string, error) {
	query := url.Values{}
	query.Set("briefRepresentation", "true")
	query.Set("first", "0")
	query.Set("max", "11")
	query.Set("search", search)
	path := "/admin/realms/" + url.PathEscape(realm) + "/users?" + query.Encode()

	resp, err := c.do(ctx, http.MethodGet, path, token, "", nil)
	if err != nil {
		return "", fmt.Errorf("failed to search users: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to search users: %w", apiError(resp))
	}

	var users []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return "", fmt.Errorf("failed to decode user search: %w", err)
	}
	if len(users) == 0 || users[0].ID == "" {
		return "", fmt.Errorf("user %q: %w", search, ErrNotFound)
	}
	return users[0].ID, nil
}

// DeleteUser removes the user whose email matches. Expects the admin API
// to answer 204.
func (c *Client) DeleteUser(ctx context.Context, token, realm, email string) error {
	userID, err := c.UserID(ctx, token, realm, email)
	if err != nil {
		return err
	}

	path := "/admin/realms/" + url.PathEscape(realm) + "/users/" + url.PathEscape(userID)
	resp, err := c.do(ctx, http.MethodDelete, path, token, "", nil)
	if err != nil {
		return fmt.Errorf("failed to delete user %q: %w", email, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("failed to delete user %q: %w", email, apiError(resp))
	}
	return nil
}
