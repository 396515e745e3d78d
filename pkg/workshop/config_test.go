package workshop

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
version: "1"
harness:
  accountId: acct123
  orgId: sandbox
  projectId: workshop
keycloak:
  endpoint: https://sso.lab.dev
  realm: workshop
users:
  - email: student1@lab.dev
    name: Student One
  - email: student2@lab.dev
checks:
  - name: build stage uses caching
    type: stage
    stage: build_stage
    expect:
      caching:
        enabled: true
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, "labkit.yaml", sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "1", cfg.Version)
	assert.Equal(t, "acct123", cfg.Harness.AccountID)
	assert.Equal(t, "sandbox", cfg.Harness.OrgID)
	assert.Equal(t, "https://sso.lab.dev", cfg.Keycloak.Endpoint)
	require.Len(t, cfg.Users, 2)
	assert.Equal(t, "student1@lab.dev", cfg.Users[0].Email)
	assert.Equal(t, "Student One", cfg.Users[0].Name)

	require.Len(t, cfg.Checks, 1)
	check := cfg.Checks[0]
	assert.Equal(t, "build stage uses caching", check.Name)
	assert.Equal(t, CheckStage, check.Type)
	assert.Equal(t, "build_stage", check.Stage)
	assert.NotZero(t, check.Expect.Kind, "expect tree should be captured")
}

func TestLoadJSON(t *testing.T) {
	const jsonConfig = `{
  "version": "1",
  "harness": {"accountId": "acct123"},
  "users": [{"email": "student1@lab.dev"}]
}`
	cfg, err := Load(writeConfig(t, "labkit.json", jsonConfig))
	require.NoError(t, err)
	assert.Equal(t, "acct123", cfg.Harness.AccountID)
	require.Len(t, cfg.Users, 1)
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	_, err := Load(writeConfig(t, "labkit.toml", "version = '1'"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseSchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing version",
			content: "harness:\n  accountId: acct123\n",
		},
		{
			name:    "unknown top-level key",
			content: "version: \"1\"\nworkshopName: gitops\n",
		},
		{
			name:    "user without email",
			content: "version: \"1\"\nusers:\n  - name: Student One\n",
		},
		{
			name:    "check with bad type",
			content: "version: \"1\"\nchecks:\n  - name: c\n    type: pipeline\n",
		},
		{
			name:    "stage check without stage",
			content: "version: \"1\"\nchecks:\n  - name: c\n    type: stage\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			require.ErrorContains(t, err, "invalid config")
		})
	}
}

func TestParseBadYAML(t *testing.T) {
	_, err := Parse([]byte("{{not yaml"))
	require.ErrorContains(t, err, "failed to parse config")
}
