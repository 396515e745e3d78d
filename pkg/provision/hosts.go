package provision

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RewriteHosts returns hosts-file content with every line mentioning
// hostname removed and a fresh "ip hostname" entry appended. Removal
// matches on substring, so stale entries survive neither as an address
// mapping nor as an alias.
func RewriteHosts(content []byte, hostname, ip string) []byte {
	lines := strings.Split(string(content), "\n")

	kept := make([]string, 0, len(lines)+2)
	for _, line := range lines {
		if strings.Contains(line, hostname) {
			continue
		}
		kept = append(kept, line)
	}

	// Drop a trailing empty element so the new entry lands on its own
	// line rather than after a blank one.
	if n := len(kept); n > 0 && kept[n-1] == "" {
		kept = kept[:n-1]
	}

	kept = append(kept, fmt.Sprintf("%s %s", ip, hostname), "")
	return []byte(strings.Join(kept, "\n"))
}

// EnsureHostsEntry maps hostname to ip in /etc/hosts, replacing any
// stale entries for the same hostname.
func (p *Provisioner) EnsureHostsEntry(hostname, ip string) error {
	path := filepath.Join(p.root, "etc", "hosts")

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read hosts file: %w", err)
	}

	if err := os.WriteFile(path, RewriteHosts(content, hostname, ip), 0o644); err != nil {
		return fmt.Errorf("failed to write hosts file: %w", err)
	}

	p.log.Info("updated hosts file", "hostname", hostname, "ip", ip)
	return nil
}
