package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadNoFileFallsBackToDefaults(t *testing.T) {
	cfg, path, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	body := `{"outputDir": "reports", "risk": {"criticalStatic": 5, "criticalSecrets": 3, "criticalVulns": 20,
		"highStatic": 2, "highSecrets": 1, "highVulns": 5,
		"mediumStatic": 0, "mediumSecrets": 0, "mediumVulns": 2}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".scanner-config.json"), []byte(body), 0o644))

	cfg, path, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".scanner-config.json"), path)
	assert.Equal(t, "reports", cfg.OutputDir)
	assert.Equal(t, 20, cfg.Risk.CriticalVulns)
	// untouched settings keep their defaults
	assert.Equal(t, Default().UserAgent, cfg.UserAgent)
	assert.Equal(t, Default().SemgrepRulesets, cfg.SemgrepRulesets)
}

func TestLoadSearchesUpwards(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".scanner-config.json"), []byte(`{"tempDir": "scratch"}`), 0o644))

	cfg, path, err := Load(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".scanner-config.json"), path)
	assert.Equal(t, "scratch", cfg.TempDir)
}
