package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadConfig_Default(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, StyleTree, cfg.Style)
	assert.True(t, cfg.Compress)
	assert.False(t, cfg.Gitignore)
}

func TestLoadConfig_YAML(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, YAMLFile, "ignore:\n  - \"*.tmp\"\n  - build/\nstyle: paths\ngitignore: true\n")

	cfg, err := Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, StylePaths, cfg.Style)
	assert.True(t, cfg.Gitignore)
	assert.True(t, cfg.Compress, "compress keeps its default")
	assert.Equal(t, []string{"*.tmp", "build/"}, cfg.Ignore)
}

func TestLoadConfig_TOML(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, TOMLFile, "style = \"indent\"\ncompress = false\nverify_clean = true\n")

	cfg, err := Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, StyleIndent, cfg.Style)
	assert.False(t, cfg.Compress)
	assert.True(t, cfg.VerifyClean)
}

func TestLoadConfig_YAMLWins(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, YAMLFile, "style: indent\n")
	writeConfig(t, tmpDir, TOMLFile, "style = \"paths\"\n")

	cfg, err := Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, StyleIndent, cfg.Style)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"bad yaml", YAMLFile, "style: [unclosed\n"},
		{"bad toml", TOMLFile, "style = \n"},
		{"unknown style", YAMLFile, "style: fancy\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			writeConfig(t, tmpDir, tt.file, tt.content)
			_, err := Load(tmpDir)
			assert.Error(t, err)
		})
	}

	assert.ErrorIs(t, Config{Style: "fancy"}.Validate(), ErrUnknownStyle)
}
