// Package template fetches and renders shared workshop assets.
//
// Workshops keep their instructor-facing assets (systemd units, VS Code
// settings, credential tab pages) in a shared GitHub repository. A
// Fetcher pulls them from the repo's raw content endpoint:
//
//	f := template.NewFetcher()
//	data, err := f.Fetch(ctx, "assets/misc/vs_code/settings.json")
//
// Assets that are templates render with Go text/template syntax.
// Rendering is strict: a key the data does not provide is an error, so a
// half-filled asset never lands on a lab VM.
//
//	page, err := f.Render(ctx, "assets/misc/welcome.html", map[string]any{
//	    "user": "student1@lab.dev",
//	})
//
// # Functions
//
// Templates have a small set of helpers: now, timestamp, uuid,
// uuidShort, upper, lower, trim, and default. The default helper takes
// the fallback first so it pipes naturally:
//
//	ExecStart=/usr/bin/code-server --port {{.Port | default "8080"}}
package template
