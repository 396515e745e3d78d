package instruqt

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes a command and returns its stdout. Replaced in tests so
// the agent binaries are not required.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func defaultRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Agent wraps the lab sandbox tooling: the agent binary for track
// variables and the fail-message hook for check feedback.
type Agent struct {
	run Runner
}

// Option configures an Agent.
type Option func(*Agent)

// WithRunner replaces the command runner.
func WithRunner(r Runner) Option {
	return func(a *Agent) {
		a.run = r
	}
}

// New creates an Agent that shells out to the sandbox binaries.
func New(opts ...Option) *Agent {
	a := &Agent{run: defaultRunner}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GetVariable reads a track variable. The agent prints the value followed
// by a newline, which is stripped.
func (a *Agent) GetVariable(ctx context.Context, name string) (string, error) {
	out, err := a.run(ctx, "agent", "variable", "get", name)
	if err != nil {
		return "", fmt.Errorf("failed to get variable %q: %w", name, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// SetVariable stores a track variable.
func (a *Agent) SetVariable(ctx context.Context, name, value string) error {
	if _, err := a.run(ctx, "agent", "variable", "set", name, value); err != nil {
		return fmt.Errorf("failed to set variable %q: %w", name, err)
	}
	return nil
}

// FailCheck surfaces a failure message to the attendee after they click
// the check button.
func (a *Agent) FailCheck(ctx context.Context, message string) error {
	if _, err := a.run(ctx, "fail-message", message); err != nil {
		return fmt.Errorf("failed to raise check failure: %w", err)
	}
	return nil
}
