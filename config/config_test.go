package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gobdd.yml")
	const body = `
features_path: "scenarios/*.feature"
tags:
  - "smoke"
  - "-slow"
case_sensitive: true
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "scenarios/*.feature", cfg.FeaturesPath)
	assert.Equal(t, []string{"smoke", "-slow"}, cfg.Tags)
	assert.True(t, cfg.CaseSensitive)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gobdd.yml")
	require.NoError(t, os.WriteFile(path, []byte("tags: [unterminated"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
