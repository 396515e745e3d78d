// Package chaos is a client for the chaos-engineering GraphQL API.
//
// The API exposes a single endpoint that multiplexes operations through
// GraphQL documents. The client keeps a typed catalog of the operations it
// supports (infrastructure registration and listing, manifest retrieval,
// HTTP probes) and validates every generated document against an embedded
// schema before sending, so builder mistakes surface locally rather than
// as remote errors.
//
// All operations are scoped:
//
//	c, err := chaos.New(accountID, apiKey)
//	if err != nil {
//		log.Fatal(err)
//	}
//	scope := chaos.Scope{OrgID: "default", ProjectID: "workshop"}
//	manifest, err := c.RegisterInfra(ctx, scope, "lab-infra", "dev", nil)
package chaos
