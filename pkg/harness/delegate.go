package harness

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/jtitra/labkit/pkg/configtree"
)

// CreateDelegate registers a project-level Kubernetes delegate and returns
// its install manifest. The manifest is checked to be well-formed YAML;
// applying it to a cluster is the k8s package's business.
func (c *Client) CreateDelegate(ctx context.Context, orgID, projectID, name string) ([]byte, error) {
	payload := map[string]any{
		"name":                  name,
		"description":           "Automatically created for this lab",
		"clusterPermissionType": "CLUSTER_ADMIN",
	}

	query := url.Values{}
	query.Set("orgIdentifier", orgID)
	query.Set("projectIdentifier", projectID)
	resp, err := c.post(ctx, "/gateway/ng/api/download-delegates/kubernetes", query, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create delegate %q: %w", name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	manifest, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read delegate manifest: %w", err)
	}
	if _, err := configtree.ParseYAMLDocuments(manifest); err != nil {
		return nil, fmt.Errorf("delegate manifest: %w", err)
	}
	return manifest, nil
}
