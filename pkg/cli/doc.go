// Package cli provides the command-line interface for labctl.
//
// The cli package implements all CLI commands for provisioning and
// validating workshop labs:
//   - compare: Check an expected configuration tree against an actual one
//   - pipeline: Verify pipeline stages and steps, create pipelines
//   - verify: Audit platform state (user logins)
//   - project, user, delegate: Manage the Harness side of a lab
//   - keycloak: Manage student SSO accounts and admin tokens
//   - snow: Manage ServiceNow records for ticketing workshops
//   - chaos: Register chaos infrastructure and probes
//   - k8s: Apply manifests, create secrets, wait on services, map hostnames
//   - gke: Mint and revoke per-student cluster credentials
//   - provision: Set up the lab VM (code-server, systemd services)
//   - agent: Read and write sandbox track variables, raise check failures
//   - render: Fetch and render workshop asset templates
//   - password: Generate student passwords
//   - check: Run the checks from a lab definition against student work
//   - cleanup: Tear down everything a lab definition provisioned
//   - init: Scaffold a lab definition interactively
//   - version: Show labctl version
//
// Credentials resolve from flags first, then environment variables
// (HARNESS_ACCOUNT_ID, HARNESS_API_KEY, KEYCLOAK_ENDPOINT,
// KEYCLOAK_ADMIN_USER, KEYCLOAK_ADMIN_PASSWORD, SNOW_INSTANCE,
// SNOW_USERNAME, SNOW_PASSWORD, GKE_GENERATOR_URL).
//
// Every command honors the persistent --json flag: with it, stdout
// carries exactly one JSON value and nothing else, so command output
// can be piped into jq or consumed by check scripts.
//
// Usage:
//
//	labctl compare expected.yaml actual.yaml
//	labctl pipeline verify --file pipeline.yaml --stage build_stage --expect want.yaml
//	labctl project create --org workshops --name "Chaos Day"
//	labctl user invite --org workshops --project chaos_day --email student@example.com
//	labctl k8s hosts --namespace harness --service nginx --hostname harness.lab.dev
//	labctl check --config labkit.yaml --pipeline student.yaml --var track=ci
//	labctl cleanup --config labkit.yaml
package cli
