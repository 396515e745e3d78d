package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvisionLoggerDefault(t *testing.T) {
	log, done, err := provisionLogger()
	require.NoError(t, err)
	require.NotNil(t, log)
	done()
}

func TestProvisionLoggerTeesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "provision.log")
	provisionLogFile = path
	t.Cleanup(func() { provisionLogFile = "" })

	log, done, err := provisionLogger()
	require.NoError(t, err)

	log.Info("unit installed", "service", "code-server")
	done()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(data, &record))
	assert.Equal(t, "unit installed", record["msg"])
	assert.Equal(t, "code-server", record["service"])
}

func TestProvisionLoggerBadFile(t *testing.T) {
	provisionLogFile = filepath.Join(t.TempDir(), "missing", "provision.log")
	t.Cleanup(func() { provisionLogFile = "" })

	_, _, err := provisionLogger()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open log file")
}

func TestNewProvisionerUsesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "provision.log")
	provisionLogFile = path
	t.Cleanup(func() { provisionLogFile = "" })

	prov, done, err := newProvisioner()
	require.NoError(t, err)
	require.NotNil(t, prov)
	done()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
