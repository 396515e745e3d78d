package harness

import (
	"context"
	"fmt"
	"net/url"
)

// CreateProject creates a project under the given organization. The project
// identifier is derived from the name with Slug and returned to the caller.
func (c *Client) CreateProject(ctx context.Context, orgID, name string) (string, error) {
	identifier := Slug(name)
	payload := map[string]any{
		"project": map[string]any{
			"name":          name,
			"orgIdentifier": orgID,
			"description":   "Automated build via Instruqt.",
			"identifier":    identifier,
			"tags": map[string]string{
				"automated": "yes",
				"owner":     "instruqt",
			},
		},
	}

	query := url.Values{}
	query.Set("orgIdentifier", orgID)
	resp, err := c.post(ctx, "/gateway/ng/api/projects", query, payload)
	if err != nil {
		return "", fmt.Errorf("failed to create project %q: %w", name, err)
	}
	if _, err := c.decodeEnvelope(resp); err != nil {
		return "", fmt.Errorf("failed to create project %q: %w", name, err)
	}
	return identifier, nil
}

// DeleteProject deletes a project.
func (c *Client) DeleteProject(ctx context.Context, orgID, projectID string) error {
	query := url.Values{}
	query.Set("orgIdentifier", orgID)
	resp, err := c.delete(ctx, "/gateway/ng/api/projects/"+url.PathEscape(projectID), query)
	if err != nil {
		return fmt.Errorf("failed to delete project %q: %w", projectID, err)
	}
	if _, err := c.decodeEnvelope(resp); err != nil {
		return fmt.Errorf("failed to delete project %q: %w", projectID, err)
	}
	return nil
}
