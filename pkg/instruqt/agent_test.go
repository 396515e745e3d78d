package instruqt

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records invocations and replays canned results.
type fakeRunner struct {
	calls [][]string
	out   []byte
	err   error
}

func (f *fakeRunner) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.out, f.err
}

func TestGetVariable(t *testing.T) {
	t.Run("strips trailing newline", func(t *testing.T) {
		fake := &fakeRunner{out: []byte("us-east-1\n")}
		a := New(WithRunner(fake.run))

		got, err := a.GetVariable(context.Background(), "HARNESS_REGION")
		require.NoError(t, err)
		assert.Equal(t, "us-east-1", got)
		assert.Equal(t, [][]string{{"agent", "variable", "get", "HARNESS_REGION"}}, fake.calls)
	})

	t.Run("wraps runner failure", func(t *testing.T) {
		fake := &fakeRunner{err: errors.New("exit status 1")}
		a := New(WithRunner(fake.run))

		_, err := a.GetVariable(context.Background(), "MISSING")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `failed to get variable "MISSING"`)
	})
}

func TestSetVariable(t *testing.T) {
	fake := &fakeRunner{}
	a := New(WithRunner(fake.run))

	require.NoError(t, a.SetVariable(context.Background(), "USER_EMAIL", "student@example.com"))
	assert.Equal(t, [][]string{{"agent", "variable", "set", "USER_EMAIL", "student@example.com"}}, fake.calls)
}

func TestFailCheck(t *testing.T) {
	fake := &fakeRunner{}
	a := New(WithRunner(fake.run))

	require.NoError(t, a.FailCheck(context.Background(), "pipeline is missing a Build stage"))
	assert.Equal(t, [][]string{{"fail-message", "pipeline is missing a Build stage"}}, fake.calls)
}
