package template

import (
	"bytes"
	"context"
	"fmt"
	texttemplate "text/template"
)

// Render fetches a repo-relative template asset and renders it with the
// given data. Rendering fails if the template references a key the data
// does not provide.
func (f *Fetcher) Render(ctx context.Context, path string, data any) (string, error) {
	raw, err := f.Fetch(ctx, path)
	if err != nil {
		return "", err
	}

	out, err := RenderString(string(raw), data)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", path, err)
	}
	return out, nil
}

// RenderString renders template text with the given data. Missing keys
// are an error so a half-filled asset never reaches a lab VM.
func RenderString(text string, data any) (string, error) {
	tmpl, err := texttemplate.New("asset").Funcs(funcs()).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}
