package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedValues(t *testing.T) {
	got, err := typedValues([]string{"enabled=false", "count=3", "name=demo", "ratio=0.5"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"enabled": false,
		"count":   3,
		"name":    "demo",
		"ratio":   0.5,
	}, got)
}

func TestTypedValues_Empty(t *testing.T) {
	got, err := typedValues(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTypedValues_BadPair(t *testing.T) {
	_, err := typedValues([]string{"nodelimiter"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid key=value pair")
}

func TestTypedValues_ValueKeepsTail(t *testing.T) {
	got, err := typedValues([]string{"command=make TARGET=all"})
	require.NoError(t, err)
	assert.Equal(t, "make TARGET=all", got["command"])
}
