package template

import "context"

// credentialsAsset is the repo-relative path of the credential tab page.
const credentialsAsset = "assets/misc/credential_tab_template.html"

// Credential is one entry on a workshop's credential tab.
type Credential struct {
	Name     string
	Username string
	Password string
	URL      string
}

// CredentialsHTML fetches the credential tab template and renders it
// with the given credentials.
func (f *Fetcher) CredentialsHTML(ctx context.Context, creds []Credential) (string, error) {
	return f.Render(ctx, credentialsAsset, map[string]any{
		"credentials": creds,
	})
}
