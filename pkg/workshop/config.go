package workshop

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Common errors returned when loading a workshop definition.
var (
	// ErrUnsupportedFormat is returned for config files that are neither
	// YAML nor JSON.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// Check types.
const (
	CheckStage     = "stage"
	CheckSteps     = "steps"
	CheckWorkspace = "workspace"
)

// Config is a workshop definition, usually loaded from labkit.yaml.
type Config struct {
	Version  string   `yaml:"version" json:"version"`
	Harness  Harness  `yaml:"harness" json:"harness"`
	Keycloak Keycloak `yaml:"keycloak" json:"keycloak"`
	Users    []User   `yaml:"users" json:"users"`
	Checks   []Check  `yaml:"checks" json:"checks"`
}

// Harness identifies where in the Harness hierarchy the workshop lives.
type Harness struct {
	AccountID string `yaml:"accountId" json:"accountId"`
	OrgID     string `yaml:"orgId" json:"orgId"`
	ProjectID string `yaml:"projectId" json:"projectId"`
}

// Keycloak points at the SSO realm backing student logins.
type Keycloak struct {
	Endpoint string `yaml:"endpoint" json:"endpoint"`
	Realm    string `yaml:"realm" json:"realm"`
}

// User is one student seat.
type User struct {
	Email string `yaml:"email" json:"email"`
	Name  string `yaml:"name" json:"name"`
}

// Check is one lab validation. Stage and steps checks run against a
// pipeline document; workspace checks run against the document root.
// Expect stays a raw node so the expected tree keeps its written order.
type Check struct {
	Name   string    `yaml:"name" json:"name"`
	Type   string    `yaml:"type" json:"type"`
	Stage  string    `yaml:"stage" json:"stage"`
	When   string    `yaml:"when" json:"when"`
	Expect yaml.Node `yaml:"expect" json:"expect"`
}

// Load reads and validates a workshop definition. The file may be YAML
// or JSON, decided by extension.
func Load(path string) (*Config, error) {
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse validates raw config bytes against the definition schema and
// decodes them. Validation happens before decoding so errors point at
// the offending location instead of a half-decoded struct.
func Parse(data []byte) (*Config, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := configSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}
