package harness

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/jtitra/labkit/pkg/configtree"
)

// CreatePipeline creates a pipeline from its YAML definition in the given
// project. The YAML is validated locally before anything goes on the wire.
func (c *Client) CreatePipeline(ctx context.Context, orgID, projectID string, pipelineYAML []byte) error {
	if _, err := configtree.ParseYAML(pipelineYAML); err != nil {
		return fmt.Errorf("pipeline definition: %w", err)
	}

	query := url.Values{}
	query.Set("orgIdentifier", orgID)
	query.Set("projectIdentifier", projectID)
	resp, err := c.postRaw(ctx, "/pipeline/api/pipelines/v2", query, "application/yaml", pipelineYAML)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}
	return nil
}
