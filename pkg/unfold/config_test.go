package unfold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSetupAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "setup.yaml")
	require.NoError(t, os.WriteFile(path, []byte("safe_optimization: true\n"), 0o644))

	setup, err := LoadSetup(path)
	require.NoError(t, err)

	assert.True(t, setup.SafeOptimization)
	assert.Equal(t, DefaultMaxEvents, setup.MaxEvents)
	assert.Equal(t, DefaultMaxBound, setup.MaxBound)
	assert.NotNil(t, setup.Order)
	assert.NotNil(t, setup.Hook)
}

func TestLoadSetupOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "setup.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_events: 5\nmax_bound: 3\n"), 0o644))

	setup, err := LoadSetup(path)
	require.NoError(t, err)

	assert.Equal(t, 5, setup.MaxEvents)
	assert.Equal(t, 3, setup.MaxBound)
}

func TestLoadSetupMissingFile(t *testing.T) {
	_, err := LoadSetup(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
