package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harun/aruna/internal/config"
)

func TestConfigureCommand(t *testing.T) {
	t.Run("saves config with flags applied", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "aruna.json")

		cmd := GetRootCmd()
		cmd.SetArgs([]string{
			"configure",
			"--config", configPath,
			"--provider", "anthropic",
			"--api-key", "sk-ant-test123",
			"--model", "claude-3-5-sonnet-20241022",
			"--port", "4200",
		})

		output := &bytes.Buffer{}
		cmd.SetOut(output)

		err := cmd.Execute()
		require.NoError(t, err)

		_, err = os.Stat(configPath)
		require.NoError(t, err)

		cfg, err := config.NewLoader(configPath).Load()
		require.NoError(t, err)
		assert.Equal(t, "anthropic", cfg.Model.Provider)
		assert.Equal(t, "sk-ant-test123", cfg.Model.APIKey)
		assert.Equal(t, 4200, cfg.Server.Port)
	})

	t.Run("rejects invalid provider", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "aruna.json")

		cmd := GetRootCmd()
		cmd.SetArgs([]string{
			"configure",
			"--config", configPath,
			"--provider", "gemini",
			"--api-key", "sk-test",
		})
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})

		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid model provider")

		_, statErr := os.Stat(configPath)
		assert.True(t, os.IsNotExist(statErr))
	})
}
