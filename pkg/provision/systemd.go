package provision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CreateSystemdService writes a unit file for name, reloads systemd, and
// enables and starts the service.
func (p *Provisioner) CreateSystemdService(ctx context.Context, name, unitContent string) error {
	path := filepath.Join(p.root, "etc", "systemd", "system", name+".service")
	if err := os.WriteFile(path, []byte(unitContent), 0o644); err != nil {
		return fmt.Errorf("failed to write unit file: %w", err)
	}

	steps := [][]string{
		{"systemctl", "daemon-reload"},
		{"systemctl", "enable", name},
		{"systemctl", "start", name},
	}
	for _, step := range steps {
		if out, err := p.run(ctx, step[0], step[1:]...); err != nil {
			return fmt.Errorf("%s failed: %w: %s", strings.Join(step, " "), err, out)
		}
	}

	p.log.Info("created systemd service", "service", name)
	return nil
}

// RunCommand runs a shell command on the host, logs the outcome, and
// returns the combined output.
func (p *Provisioner) RunCommand(ctx context.Context, command string) ([]byte, error) {
	out, err := p.run(ctx, "sh", "-c", command)
	if err != nil {
		p.log.Error("command failed", "command", command, "error", err, "output", string(out))
		return out, fmt.Errorf("command %q failed: %w", command, err)
	}

	p.log.Info("command succeeded", "command", command)
	return out, nil
}
