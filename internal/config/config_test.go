package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1000, cfg.NumPairs)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, "latency", cfg.Hint)
	assert.True(t, cfg.Warmup)
	assert.Zero(t, cfg.Jobs)
}

func TestLoadMissingDefaultsFallsBack(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokbench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
model: cl100k_base
dataset: sharegpt.json
num_pairs: 250
hint: throughput
jobs: 8
log_scale: true
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "cl100k_base", cfg.Model)
	assert.Equal(t, "sharegpt.json", cfg.Dataset)
	assert.Equal(t, 250, cfg.NumPairs)
	assert.Equal(t, "throughput", cfg.Hint)
	assert.Equal(t, 8, cfg.Jobs)
	assert.True(t, cfg.LogScale)
	// Untouched fields keep their defaults.
	assert.True(t, cfg.Warmup)
}

func TestLoadExplicitMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: [unterminated"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model = "gpt-4o"
	assert.NoError(t, cfg.Validate())

	missing := DefaultConfig()
	assert.Error(t, missing.Validate())

	badPairs := DefaultConfig()
	badPairs.Model = "gpt-4o"
	badPairs.NumPairs = 0
	assert.Error(t, badPairs.Validate())

	badHint := DefaultConfig()
	badHint.Model = "gpt-4o"
	badHint.Hint = "warp-speed"
	assert.Error(t, badHint.Validate())
}
