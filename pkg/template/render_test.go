package template

import (
	"context"
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderString(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		data     any
		expected string
	}{
		{
			name:     "plain substitution",
			text:     "Hello {{.user}}",
			data:     map[string]any{"user": "student1@lab.dev"},
			expected: "Hello student1@lab.dev",
		},
		{
			name:     "upper helper",
			text:     "{{.env | upper}}",
			data:     map[string]any{"env": "sandbox"},
			expected: "SANDBOX",
		},
		{
			name:     "default helper with empty value",
			text:     "port={{.port | default \"8080\"}}",
			data:     map[string]any{"port": ""},
			expected: "port=8080",
		},
		{
			name:     "default helper with value",
			text:     "port={{.port | default \"8080\"}}",
			data:     map[string]any{"port": "9000"},
			expected: "port=9000",
		},
		{
			name:     "trim helper",
			text:     "{{.name | trim}}",
			data:     map[string]any{"name": "  se-workshop  "},
			expected: "se-workshop",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderString(tt.text, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRenderStringGeneratedValues(t *testing.T) {
	got, err := RenderString("id={{uuid}}", nil)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^id=[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`), got)

	got, err = RenderString("{{uuidShort}}", nil)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{8}$`), got)
}

func TestRenderStringErrors(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		_, err := RenderString("Hello {{.user}}", map[string]any{})
		require.ErrorContains(t, err, "failed to render template")
	})

	t.Run("bad syntax", func(t *testing.T) {
		_, err := RenderString("{{.user", nil)
		require.ErrorContains(t, err, "failed to parse template")
	})
}

func TestRender(t *testing.T) {
	f := testFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Welcome {{.user}} to {{.workshop}}"))
	})

	got, err := f.Render(context.Background(), "assets/misc/welcome.txt", map[string]any{
		"user":     "student1@lab.dev",
		"workshop": "gitops",
	})
	require.NoError(t, err)
	assert.Equal(t, "Welcome student1@lab.dev to gitops", got)
}

func TestRenderReportsAssetPath(t *testing.T) {
	f := testFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{{.missing}}"))
	})

	_, err := f.Render(context.Background(), "assets/misc/welcome.txt", map[string]any{})
	require.ErrorContains(t, err, "assets/misc/welcome.txt")
}
