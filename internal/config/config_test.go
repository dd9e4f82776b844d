package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "window:\n  title: rig-1\n"))
	require.NoError(t, err)

	assert.Equal(t, "rig-1", cfg.Window.Title)
	assert.Equal(t, 512, cfg.Window.Size)
	assert.Equal(t, 60, cfg.Window.FPS)
	assert.Equal(t, 512, cfg.Texture.Size)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "console", cfg.Logging.Type)
	assert.True(t, cfg.Recording.Enabled)
}

func TestLoadConfigFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
window:
  size: 1024
  fps: 120
database:
  enabled: true
  dsn: /tmp/rig.db
api:
  enabled: true
  port: "9090"
logging:
  type: file
  level: debug
  file_path: /tmp/rig.log
`))
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Window.Size)
	assert.Equal(t, 120, cfg.Window.FPS)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, "/tmp/rig.db", cfg.Database.DSN)
	assert.Equal(t, "9090", cfg.API.Port)

	s := cfg.LoggerSettings()
	assert.Equal(t, "file", s.Type)
	assert.Equal(t, "debug", s.Level)
	assert.Equal(t, "/tmp/rig.log", s.FilePath)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("FINSTIM_WINDOW_FPS", "144")
	t.Setenv("FINSTIM_API_ENABLED", "true")

	cfg, err := LoadConfig(writeConfig(t, "window:\n  size: 256\n"))
	require.NoError(t, err)

	assert.Equal(t, 256, cfg.Window.Size)
	assert.Equal(t, 144, cfg.Window.FPS)
	assert.True(t, cfg.API.Enabled)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero window size", func(c *Config) { c.Window.Size = 0 }},
		{"negative fps", func(c *Config) { c.Window.FPS = -1 }},
		{"zero scale", func(c *Config) { c.Window.Scale = 0 }},
		{"zero texture size", func(c *Config) { c.Texture.Size = 0 }},
		{"api without port", func(c *Config) { c.API.Enabled = true; c.API.Port = "" }},
		{"bad logging type", func(c *Config) { c.Logging.Type = "syslog" }},
		{"bad logging level", func(c *Config) { c.Logging.Level = "trace" }},
		{"file logging without path", func(c *Config) {
			c.Logging.Type = "file"
			c.Logging.FilePath = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, ""))
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
