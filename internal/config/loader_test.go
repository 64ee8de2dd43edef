package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadMissingFileReturnsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	loader := NewLoader(filepath.Join(tmpDir, "missing.json"))

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, 3100, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.DataDir)
	assert.NotEmpty(t, cfg.Logging.File)
}

func TestLoader_LoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "aruna.json")

	content := `{
  "server": {"host": "127.0.0.1", "port": 8088},
  "model": {"provider": "openai", "api_key": "sk-test", "name": "gpt-4"},
  "logging": {"level": "debug"},
  "data_dir": "` + tmpDir + `"
}`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0600))

	cfg, err := NewLoader(configPath).Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, "openai", cfg.Model.Provider)
	assert.Equal(t, "gpt-4", cfg.Model.Name)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, filepath.Join(tmpDir, "aruna.log"), cfg.Logging.File)
}

func TestLoader_LoadMalformedFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "aruna.json")
	require.NoError(t, os.WriteFile(configPath, []byte("{not json"), 0600))

	_, err := NewLoader(configPath).Load()
	assert.Error(t, err)
}

func TestLoader_SaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "aruna.json")
	loader := NewLoader(configPath)

	cfg := DefaultConfig()
	cfg.Server.Port = 9000
	cfg.DataDir = tmpDir
	require.NoError(t, loader.Save(cfg))

	loaded, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, loaded.Server.Port)
}
