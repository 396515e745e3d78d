package provision

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	calls [][]string
	fail  map[string]error
}

func (f *fakeRunner) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	call := append([]string{name}, args...)
	f.calls = append(f.calls, call)

	if err, ok := f.fail[strings.Join(call, " ")]; ok {
		return []byte("boom"), err
	}
	if err, ok := f.fail[name]; ok {
		return []byte("boom"), err
	}
	return []byte("ok\n"), nil
}

// stagingRoot builds the directory skeleton the provisioner expects.
func stagingRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{filepath.Join("etc", "systemd", "system"), "tmp"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	}
	return root
}

func TestRewriteHosts(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		hostname string
		ip       string
		expected string
	}{
		{
			name:     "append to untouched file",
			content:  "127.0.0.1 localhost\n",
			hostname: "harness.lab.dev",
			ip:       "10.0.0.9",
			expected: "127.0.0.1 localhost\n10.0.0.9 harness.lab.dev\n",
		},
		{
			name:     "replace stale entry",
			content:  "127.0.0.1 localhost\n10.0.0.2 harness.lab.dev\n",
			hostname: "harness.lab.dev",
			ip:       "10.0.0.9",
			expected: "127.0.0.1 localhost\n10.0.0.9 harness.lab.dev\n",
		},
		{
			name:     "drop every line mentioning the hostname",
			content:  "127.0.0.1 localhost\n10.0.0.2 harness.lab.dev\n# harness.lab.dev added by setup\n",
			hostname: "harness.lab.dev",
			ip:       "10.0.0.9",
			expected: "127.0.0.1 localhost\n10.0.0.9 harness.lab.dev\n",
		},
		{
			name:     "empty file",
			content:  "",
			hostname: "harness.lab.dev",
			ip:       "10.0.0.9",
			expected: "10.0.0.9 harness.lab.dev\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RewriteHosts([]byte(tt.content), tt.hostname, tt.ip)
			assert.Equal(t, tt.expected, string(got))
		})
	}
}

func TestEnsureHostsEntry(t *testing.T) {
	root := stagingRoot(t)
	hostsPath := filepath.Join(root, "etc", "hosts")
	require.NoError(t, os.WriteFile(hostsPath, []byte("127.0.0.1 localhost\n10.0.0.2 sso.lab.dev\n"), 0o644))

	p := New(WithRoot(root))
	require.NoError(t, p.EnsureHostsEntry("sso.lab.dev", "10.0.0.9"))

	data, err := os.ReadFile(hostsPath)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1 localhost\n10.0.0.9 sso.lab.dev\n", string(data))
}

func TestEnsureHostsEntryMissingFile(t *testing.T) {
	p := New(WithRoot(t.TempDir()))
	err := p.EnsureHostsEntry("sso.lab.dev", "10.0.0.9")
	require.ErrorContains(t, err, "failed to read hosts file")
}

func TestCreateSystemdService(t *testing.T) {
	root := stagingRoot(t)
	runner := &fakeRunner{}
	p := New(WithRoot(root), WithRunner(runner.run))

	const unit = "[Unit]\nDescription=code-server\n"
	require.NoError(t, p.CreateSystemdService(context.Background(), "code-server", unit))

	data, err := os.ReadFile(filepath.Join(root, "etc", "systemd", "system", "code-server.service"))
	require.NoError(t, err)
	assert.Equal(t, unit, string(data))

	assert.Equal(t, [][]string{
		{"systemctl", "daemon-reload"},
		{"systemctl", "enable", "code-server"},
		{"systemctl", "start", "code-server"},
	}, runner.calls)
}

func TestCreateSystemdServiceCommandFailure(t *testing.T) {
	root := stagingRoot(t)
	runner := &fakeRunner{fail: map[string]error{
		"systemctl enable code-server": errors.New("exit status 1"),
	}}
	p := New(WithRoot(root), WithRunner(runner.run))

	err := p.CreateSystemdService(context.Background(), "code-server", "[Unit]\n")
	require.ErrorContains(t, err, "systemctl enable code-server failed")
	require.ErrorContains(t, err, "boom")
}

func TestRunCommand(t *testing.T) {
	runner := &fakeRunner{}
	p := New(WithRunner(runner.run))

	out, err := p.RunCommand(context.Background(), "kubectl get pods")
	require.NoError(t, err)
	assert.Equal(t, "ok\n", string(out))
	assert.Equal(t, [][]string{{"sh", "-c", "kubectl get pods"}}, runner.calls)
}

func TestRunCommandFailure(t *testing.T) {
	runner := &fakeRunner{fail: map[string]error{"sh": errors.New("exit status 127")}}
	p := New(WithRunner(runner.run))

	_, err := p.RunCommand(context.Background(), "not-a-command")
	require.ErrorContains(t, err, `command "not-a-command" failed`)
}
