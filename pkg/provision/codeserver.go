package provision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// installScriptURL is the official code-server install script.
var installScriptURL = "https://raw.githubusercontent.com/cdr/code-server/main/install.sh"

// Asset paths for the VS Code setup, relative to the workshop repo.
const (
	settingsAsset = "assets/misc/vs_code/settings.json"
	unitAsset     = "assets/misc/vs_code/code-server.service"
)

// SetupCodeServer installs and configures code-server as the student
// IDE. The install is skipped when code-server is already on the PATH.
// The fetched unit template carries EXAMPLEPORT and EXAMPLEDIRECTORY
// placeholders which are replaced before the service is created.
func (p *Provisioner) SetupCodeServer(ctx context.Context, port int, workDir string) error {
	if _, err := p.run(ctx, "which", "code-server"); err == nil {
		p.log.Info("code-server already installed")
	} else {
		p.log.Info("installing code-server")
		if err := p.installCodeServer(ctx); err != nil {
			return err
		}
	}

	userDir := filepath.Join(p.root, "root", ".local", "share", "code-server", "User")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	settings, err := p.fetcher.Fetch(ctx, settingsAsset)
	if err != nil {
		return fmt.Errorf("failed to fetch settings: %w", err)
	}
	if err := os.WriteFile(filepath.Join(userDir, "settings.json"), settings, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	unit, err := p.fetcher.Fetch(ctx, unitAsset)
	if err != nil {
		return fmt.Errorf("failed to fetch service unit: %w", err)
	}
	unitContent := strings.ReplaceAll(string(unit), "EXAMPLEPORT", strconv.Itoa(port))
	unitContent = strings.ReplaceAll(unitContent, "EXAMPLEDIRECTORY", workDir)

	if err := p.CreateSystemdService(ctx, "code-server", unitContent); err != nil {
		return err
	}

	if out, err := p.run(ctx, "code-server", "--install-extension", "hashicorp.terraform"); err != nil {
		return fmt.Errorf("failed to install terraform extension: %w: %s", err, out)
	}

	p.log.Info("code-server ready", "port", port, "directory", workDir)
	return nil
}

func (p *Provisioner) installCodeServer(ctx context.Context) error {
	script, err := p.fetcher.FetchURL(ctx, installScriptURL)
	if err != nil {
		return fmt.Errorf("failed to fetch install script: %w", err)
	}

	scriptPath := filepath.Join(p.root, "tmp", "install.sh")
	if err := os.WriteFile(scriptPath, script, 0o755); err != nil {
		return fmt.Errorf("failed to write install script: %w", err)
	}

	if out, err := p.run(ctx, "bash", scriptPath); err != nil {
		return fmt.Errorf("install script failed: %w: %s", err, out)
	}
	return nil
}
