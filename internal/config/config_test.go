package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/letpl/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmptyPathIsUnlimited(t *testing.T) {
	l, err := config.Load("")
	require.NoError(t, err)
	assert.Zero(t, l.MaxSteps)
	assert.Zero(t, l.MaxCallStackDepth)
}

func TestLoadValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "limits.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_steps = 1000\nmax_call_stack_depth = 50\n"), 0o644))

	l, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1000, l.MaxSteps)
	assert.Equal(t, 50, l.MaxCallStackDepth)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}
