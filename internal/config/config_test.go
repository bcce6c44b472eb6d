package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesIndexbuildDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, cfg.IndexDir, cfg.Index.IndexFolderPath)
	assert.Equal(t, 30, cfg.Index.MaxWordCap)
	assert.Equal(t, 20000, cfg.TitleFileCap)
}

func TestLoadAppliesTOMLOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wikidex.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
dump_path = "custom-dump.xml.gz"
max_word_cap = 15
`), 0o644))

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "custom-dump.xml.gz", cfg.DumpPath)
	assert.Equal(t, 15, cfg.Index.MaxWordCap)
	// Unset TOML keys retain their default value.
	assert.Equal(t, Default().ServerAddr, cfg.ServerAddr)
}

func TestLoadMissingTOMLFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestEnvVarsOverrideTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wikidex.toml")
	require.NoError(t, os.WriteFile(path, []byte(`server_addr = ":9000"`), 0o644))

	t.Setenv("WIKIDEX_SERVER_ADDR", ":7000")

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.ServerAddr)
}
