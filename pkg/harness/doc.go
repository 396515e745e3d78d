// Package harness is an HTTP client for the Harness platform API, covering
// the operations workshop provisioning needs: projects, user invites and
// deletion, login verification against the audit trail, pipelines, and
// Kubernetes delegate manifests.
//
// All calls are scoped to one account:
//
//	client, err := harness.New(accountID, apiKey)
//	if err != nil {
//	    return err
//	}
//	projectID, err := client.CreateProject(ctx, "default", "Workshop Lab")
//
// Responses travel in the platform's status envelope; anything that is not
// SUCCESS surfaces as an *APIError, and empty lookups return ErrNotFound.
package harness
