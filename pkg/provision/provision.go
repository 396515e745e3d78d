package provision

import (
	"context"
	"log/slog"
	"os/exec"

	"github.com/jtitra/labkit/pkg/logging"
	"github.com/jtitra/labkit/pkg/template"
)

// Runner executes a command and returns its combined output. Tests
// substitute a fake to keep provisioning off the real host.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func defaultRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Provisioner prepares a lab host: hosts entries, systemd services, and
// the code-server install students use as their IDE.
type Provisioner struct {
	log     *slog.Logger
	run     Runner
	fetcher *template.Fetcher
	root    string
}

// Option configures a Provisioner.
type Option func(*Provisioner)

// WithLogger sets the logger for provisioning steps.
func WithLogger(log *slog.Logger) Option {
	return func(p *Provisioner) {
		p.log = log
	}
}

// WithRunner sets the command runner.
func WithRunner(run Runner) Option {
	return func(p *Provisioner) {
		p.run = run
	}
}

// WithFetcher sets the asset fetcher.
func WithFetcher(f *template.Fetcher) Option {
	return func(p *Provisioner) {
		p.fetcher = f
	}
}

// WithRoot re-roots all file paths the provisioner touches. The default
// is the real filesystem root; tests point it at a scratch directory.
func WithRoot(root string) Option {
	return func(p *Provisioner) {
		p.root = root
	}
}

// New creates a Provisioner that runs commands on the local host.
func New(opts ...Option) *Provisioner {
	p := &Provisioner{
		log:     logging.Nop(),
		run:     defaultRunner,
		fetcher: template.NewFetcher(),
		root:    "/",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
