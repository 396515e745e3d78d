// Package k8s carries the cluster-side provisioning helpers: waiting for
// load balancers and the API server, secret creation, and applying
// manifest files of arbitrary kinds through the dynamic client.
package k8s
