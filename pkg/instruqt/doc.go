// Package instruqt wraps the Instruqt sandbox tooling available inside
// lab VMs.
package instruqt
