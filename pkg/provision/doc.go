// Package provision prepares workshop lab hosts.
//
// A Provisioner handles the host-level setup a lab VM needs before
// students arrive: /etc/hosts entries for in-cluster services, systemd
// units, and a code-server install configured as the student IDE.
//
// Commands run through an injectable Runner and file paths resolve
// under a configurable root, so tests never touch the real host:
//
//	p := provision.New(
//	    provision.WithLogger(logger),
//	    provision.WithRoot(stagingDir),
//	)
//	err := p.SetupCodeServer(ctx, 8443, "/root/workspace")
package provision
