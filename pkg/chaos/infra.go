package chaos

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jtitra/labkit/pkg/configtree"
)

// Infra is one registered chaos infrastructure.
type Infra struct {
	InfraID          string `json:"infraID"`
	Name             string `json:"name"`
	EnvironmentID    string `json:"environmentID"`
	PlatformName     string `json:"platformName"`
	InfraNamespace   string `json:"infraNamespace"`
	ServiceAccount   string `json:"serviceAccount"`
	InfraScope       string `json:"infraScope"`
	InstallationType string `json:"installationType"`
}

// defaultInfraProperties returns the registration properties workshops
// use unless the caller overrides them: a namespace-scoped Kubernetes
// infrastructure installed by manifest into the hce namespace.
func defaultInfraProperties() map[string]any {
	return map[string]any{
		"platformName":         "Kubernetes",
		"infraNamespace":       "hce",
		"serviceAccount":       "hce",
		"infraScope":           "namespace",
		"infraNsExists":        true,
		"installationType":     "MANIFEST",
		"isAutoUpgradeEnabled": false,
	}
}

func mergeProperties(defaults, overrides map[string]any) map[string]any {
	merged := make(map[string]any, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// RegisterInfra enables a chaos infrastructure in the given environment
// and returns the installation manifest. Caller properties override the
// defaults; name and environment always win.
func (c *Client) RegisterInfra(ctx context.Context, scope Scope, name, envID string, properties map[string]any) ([]byte, error) {
	request := mergeProperties(defaultInfraProperties(), properties)
	request["name"] = name
	request["environmentID"] = envID

	data, err := c.run(ctx, opRegisterInfra, scope, request)
	if err != nil {
		return nil, fmt.Errorf("failed to register infrastructure %q: %w", name, err)
	}

	var out struct {
		RegisterInfra struct {
			Manifest string `json:"manifest"`
		} `json:"registerInfra"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode registration for %q: %w", name, err)
	}

	manifest := []byte(out.RegisterInfra.Manifest)
	if _, err := configtree.ParseYAMLDocuments(manifest); err != nil {
		return nil, fmt.Errorf("registration for %q returned a bad manifest: %w", name, err)
	}
	return manifest, nil
}

// ListInfra returns the chaos infrastructures registered in the scope.
func (c *Client) ListInfra(ctx context.Context, scope Scope) ([]Infra, error) {
	data, err := c.run(ctx, opListInfra, scope, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("failed to list infrastructures: %w", err)
	}

	var out struct {
		ListInfrasV2 struct {
			TotalNoOfInfras int     `json:"totalNoOfInfras"`
			Infras          []Infra `json:"infras"`
		} `json:"listInfrasV2"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode infrastructure list: %w", err)
	}
	return out.ListInfrasV2.Infras, nil
}

// InfraManifest resolves an infrastructure by name and fetches its
// installation manifest. Returns ErrNotFound when no infrastructure in
// the scope carries the name.
func (c *Client) InfraManifest(ctx context.Context, scope Scope, name string) ([]byte, error) {
	infras, err := c.ListInfra(ctx, scope)
	if err != nil {
		return nil, err
	}

	var infraID string
	for _, infra := range infras {
		if infra.Name == name {
			infraID = infra.InfraID
			break
		}
	}
	if infraID == "" {
		return nil, fmt.Errorf("infrastructure %q: %w", name, ErrNotFound)
	}

	data, err := c.run(ctx, opInfraManifest, scope, infraID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manifest for %q: %w", name, err)
	}

	var out struct {
		GetInfraManifest string `json:"getInfraManifest"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode manifest for %q: %w", name, err)
	}

	manifest := []byte(out.GetInfraManifest)
	if _, err := configtree.ParseYAMLDocuments(manifest); err != nil {
		return nil, fmt.Errorf("manifest for %q is not valid yaml: %w", name, err)
	}
	return manifest, nil
}
