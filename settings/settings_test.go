package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comfyhost/logger"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[paths]
workflows = "/comfy/user/default/workflows"
models = "/comfy/models"
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, 5213, config.Server.Port)
	assert.Equal(t, "Frontend", config.Server.FrontendDir)
	assert.Equal(t, "/comfy/user/default/workflows", config.Paths.Workflows)
	assert.Equal(t, "/comfy/models", config.Paths.Models)
	assert.Empty(t, config.Paths.Media)
	assert.Equal(t, logger.LevelInfo, config.Logging.Level)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
[server]
host = "127.0.0.1"
port = 8080
frontendDir = "/srv/frontend"

[paths]
workflows = "w"
models = "m"
media = "input"

[logging]
level = "debug"
format = "json"
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", config.Server.Host)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "input", config.Paths.Media)
	assert.Equal(t, "json", config.Logging.Format)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		assert.ErrorContains(t, err, "config file not found")
	})

	t.Run("invalid toml", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "[paths\n"))
		assert.ErrorContains(t, err, "error parsing config file")
	})

	t.Run("missing required paths", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "[server]\nport = 9000\n"))
		assert.ErrorContains(t, err, "configuration validation failed")
	})

	t.Run("port out of range", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "[server]\nport = 70000\n[paths]\nworkflows = \"w\"\nmodels = \"m\"\n"))
		assert.ErrorContains(t, err, "configuration validation failed")
	})
}
