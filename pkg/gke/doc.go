// Package gke talks to the GKE credential generator service.
//
// Workshops that share one GKE cluster give each student an isolated
// namespace. The generator service mints a kubeconfig for a new user
// bound to an existing ClusterRole:
//
//	client, err := gke.New("https://generator.lab.dev")
//	err = client.WriteCredentials(ctx, "student1", "workshop-user", "/root/.kube/config")
//
// RevokeUser tears the namespace and user down again when the lab ends.
package gke
