package chaos

import (
	"context"
	"fmt"
	"strings"
)

// ProbeID derives a probe identifier from a display name: spaces become
// underscores and dashes are dropped.
func ProbeID(name string) string {
	return strings.ReplaceAll(strings.ReplaceAll(name, " ", "_"), "-", "")
}

// defaultProbeProperties returns the HTTP probe settings workshops start
// from: a GET against a placeholder URL expecting a 200.
func defaultProbeProperties() map[string]any {
	return map[string]any{
		"probeTimeout":         "10s",
		"interval":             "5s",
		"retry":                3,
		"attempt":              3,
		"probePollingInterval": "1s",
		"initialDelay":         "2s",
		"stopOnFailure":        false,
		"url":                  "http://example.com",
		"method": map[string]any{
			"get": map[string]any{
				"criteria":     "==",
				"responseCode": "200",
			},
		},
	}
}

// AddProbe creates an HTTP probe on Kubernetes infrastructure. Caller
// properties override the defaults field by field.
func (c *Client) AddProbe(ctx context.Context, scope Scope, name string, properties map[string]any) error {
	request := map[string]any{
		"name":                     name,
		"probeID":                  ProbeID(name),
		"type":                     "httpProbe",
		"infrastructureType":       "Kubernetes",
		"kubernetesHTTPProperties": mergeProperties(defaultProbeProperties(), properties),
	}

	if _, err := c.run(ctx, opAddProbe, scope, request); err != nil {
		return fmt.Errorf("failed to add probe %q: %w", name, err)
	}
	return nil
}
