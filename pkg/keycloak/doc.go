// Package keycloak manages workshop attendee accounts on the identity
// provider embedded in lab environments: admin token acquisition and user
// create/lookup/delete against the admin REST API.
package keycloak
