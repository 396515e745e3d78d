package servicenow

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// DefaultGroup is where workshop attendees land unless told otherwise.
const DefaultGroup = "Workshop Users"

// User is a sys_user row to be inserted.
type User struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	UserName  string `json:"user_name"`
	Email     string `json:"email"`
	Password  string `json:"user_password"`
}

// Validate checks the user before it goes on the wire.
func (u User) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.FirstName, validation.Required),
		validation.Field(&u.LastName, validation.Required),
		validation.Field(&u.UserName, validation.Required),
		validation.Field(&u.Email, validation.Required, is.Email),
		validation.Field(&u.Password, validation.Required),
	)
}

// CreateUser inserts a sys_user row and returns its sys_id.
func (c *Client) CreateUser(ctx context.Context, u User) (string, error) {
	if err := u.Validate(); err != nil {
		return "", fmt.Errorf("invalid user: %w", err)
	}

	query := url.Values{}
	query.Set("sysparm_input_display_value", "true")
	resp, err := c.do(ctx, http.MethodPost, "/api/now/table/sys_user", query, u)
	if err != nil {
		return "", fmt.Errorf("failed to create user %q: %w", u.UserName, err)
	}

	var result struct {
		SysID string `json:"sys_id"`
	}
	if err := decodeResult(resp, &result); err != nil {
		return "", fmt.Errorf("failed to create user %q: %w", u.UserName, err)
	}
	return result.SysID, nil
}

// DeleteUser removes a sys_user row by sys_id.
func (c *Client) DeleteUser(ctx context.Context, sysID string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/now/table/sys_user/"+url.PathEscape(sysID), nil, nil)
	if err != nil {
		return fmt.Errorf("failed to delete user %q: %w", sysID, err)
	}
	if err := decodeResult(resp, nil); err != nil {
		return fmt.Errorf("failed to delete user %q: %w", sysID, err)
	}
	return nil
}

// AddUserToGroup resolves the group by name and inserts a membership row.
// An empty groupName means DefaultGroup. Returns the membership sys_id.
func (c *Client) AddUserToGroup(ctx context.Context, userSysID, groupName string) (string, error) {
	if groupName == "" {
		groupName = DefaultGroup
	}

	query := url.Values{}
	query.Set("sysparm_query", "name="+groupName)
	resp, err := c.do(ctx, http.MethodGet, "/api/now/table/sys_user_group", query, nil)
	if err != nil {
		return "", fmt.Errorf("failed to look up group %q: %w", groupName, err)
	}

	var groups []struct {
		SysID string `json:"sys_id"`
	}
	if err := decodeResult(resp, &groups); err != nil {
		return "", fmt.Errorf("failed to look up group %q: %w", groupName, err)
	}
	if len(groups) == 0 {
		return "", fmt.Errorf("group %q: %w", groupName, ErrGroupNotFound)
	}

	payload := map[string]string{
		"group": groups[0].SysID,
		"user":  userSysID,
	}
	resp, err = c.do(ctx, http.MethodPost, "/api/now/table/sys_user_grmember", nil, payload)
	if err != nil {
		return "", fmt.Errorf("failed to add user to group %q: %w", groupName, err)
	}

	var membership struct {
		SysID string `json:"sys_id"`
	}
	if err := decodeResult(resp, &membership); err != nil {
		return "", fmt.Errorf("failed to add user to group %q: %w", groupName, err)
	}
	return membership.SysID, nil
}
