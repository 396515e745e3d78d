package harness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ohler55/ojg/jp"
)

const loginLookback = 5 * time.Minute

var (
	inviteMaxRetries    uint64 = 4
	inviteRetryInterval        = 3 * time.Second
)

// userIDPath extracts the user uuid from an aggregate search response.
var userIDPath = jp.MustParseString("$.data.content[0].user.uuid")

// VerifyUserLogin checks the account audit trail for a LOGIN action by the
// given principal within the last five minutes.
func (c *Client) VerifyUserLogin(ctx context.Context, userName string) (bool, error) {
	startTime := time.Now().Add(-loginLookback).UnixMilli()
	payload := map[string]any{
		"actions": []string{"LOGIN"},
		"principals": []map[string]string{{
			"type":       "USER",
			"identifier": userName,
		}},
		"filterType": "Audit",
		"startTime":  strconv.FormatInt(startTime, 10),
	}

	resp, err := c.post(ctx, "/gateway/audit/api/audits/list", nil, payload)
	if err != nil {
		return false, fmt.Errorf("failed to query audit trail: %w", err)
	}
	env, err := c.decodeEnvelope(resp)
	if err != nil {
		return false, fmt.Errorf("failed to query audit trail: %w", err)
	}

	var data struct {
		TotalItems int `json:"totalItems"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return false, fmt.Errorf("failed to decode audit response: %w", err)
	}
	return data.TotalItems >= 1, nil
}

// InviteUserToProject invites a user by email into a project with the
// managed Project Admin role. It returns the platform status string so
// callers can distinguish a soft failure from a transport error.
func (c *Client) InviteUserToProject(ctx context.Context, orgID, projectID, email string) (string, error) {
	payload := map[string]any{
		"emails":     []string{email},
		"userGroups": []string{"_project_all_users"},
		"roleBindings": []map[string]any{{
			"resourceGroupIdentifier": "_all_project_level_resources",
			"roleIdentifier":          "_project_admin",
			"roleName":                "Project Admin",
			"resourceGroupName":       "All Project Level Resources",
			"managedRole":             true,
		}},
	}

	query := url.Values{}
	query.Set("orgIdentifier", orgID)
	query.Set("projectIdentifier", projectID)
	resp, err := c.post(ctx, "/gateway/ng/api/user/users", query, payload)
	if err != nil {
		return "", fmt.Errorf("failed to invite user %q: %w", email, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", fmt.Errorf("failed to decode invite response: %w", err)
	}
	return env.Status, nil
}

// InviteUserToProjectRetry invites a user, retrying soft failures on a
// constant three second interval up to four retries. New user invites
// routinely fail until account propagation settles, so a plain invite is
// rarely what provisioning flows want.
func (c *Client) InviteUserToProjectRetry(ctx context.Context, orgID, projectID, email string) error {
	operation := func() error {
		status, err := c.InviteUserToProject(ctx, orgID, projectID, email)
		if err != nil {
			return backoff.Permanent(err)
		}
		if status != statusSuccess {
			return fmt.Errorf("invite returned status %q", status)
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(inviteRetryInterval), inviteMaxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return fmt.Errorf("failed to invite user %q after retries: %w", email, err)
	}
	return nil
}

// UserID searches account users and returns the uuid of the best match,
// usually looked up by email. Returns ErrNotFound when the search comes
// back empty.
func (c *Client) UserID(ctx context.Context, searchTerm string) (string, error) {
	query := url.Values{}
	query.Set("searchTerm", searchTerm)
	resp, err := c.post(ctx, "/gateway/ng/api/user/aggregate", query, nil)
	if err != nil {
		return "", fmt.Errorf("failed to search users: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &APIError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read search response: %w", err)
	}
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return "", fmt.Errorf("failed to decode search response: %w", err)
	}

	results := userIDPath.Get(data)
	if len(results) == 0 {
		return "", fmt.Errorf("user %q: %w", searchTerm, ErrNotFound)
	}
	uuid, ok := results[0].(string)
	if !ok || uuid == "" {
		return "", fmt.Errorf("user %q: %w", searchTerm, ErrNotFound)
	}
	return uuid, nil
}

// DeleteUser removes a user from the account by uuid.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	resp, err := c.delete(ctx, "/gateway/ng/api/user/"+url.PathEscape(userID), nil)
	if err != nil {
		return fmt.Errorf("failed to delete user %q: %w", userID, err)
	}
	if _, err := c.decodeEnvelope(resp); err != nil {
		return fmt.Errorf("failed to delete user %q: %w", userID, err)
	}
	return nil
}

// DeleteUserByEmail looks a user up by email and deletes them. A user who
// never logged in has no account record; that surfaces as ErrNotFound,
// which cleanup flows treat as already done.
func (c *Client) DeleteUserByEmail(ctx context.Context, email string) error {
	userID, err := c.UserID(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("nothing to delete: %w", err)
		}
		return err
	}
	return c.DeleteUser(ctx, userID)
}
