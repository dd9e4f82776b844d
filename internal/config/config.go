// Package config loads rig configuration from a YAML file and
// FINSTIM_-prefixed environment variables through Viper.
package config

import (
	"errors"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"finstim/internal/logger"
)

// Config holds all rig configuration.
type Config struct {
	Window    WindowConfig    `mapstructure:"window"`
	Texture   TextureConfig   `mapstructure:"texture"`
	Database  DatabaseConfig  `mapstructure:"database"`
	API       APIConfig       `mapstructure:"api"`
	Recording RecordingConfig `mapstructure:"recording"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// WindowConfig holds display window settings.
type WindowConfig struct {
	Size  int    `mapstructure:"size"`
	FPS   int    `mapstructure:"fps"`
	Scale int    `mapstructure:"scale"`
	Title string `mapstructure:"title"`
}

// TextureConfig holds default texture settings.
type TextureConfig struct {
	// Size is the default texture side length in pixels; protocols
	// may override it.
	Size int `mapstructure:"size"`
}

// DatabaseConfig holds session database settings.
type DatabaseConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// DSN is the SQLite path; empty means in-memory.
	DSN string `mapstructure:"dsn"`
}

// APIConfig holds the control API settings.
type APIConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    string `mapstructure:"port"`
}

// RecordingConfig holds JSON session record settings.
type RecordingConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Dir receives one JSON document per session.
	Dir string `mapstructure:"dir"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Type       string `mapstructure:"type"`
	Level      string `mapstructure:"level"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// LoadConfig loads configuration from path, or from config.yaml in
// the working directory when path is empty. A missing file is fine,
// defaults and environment variables still apply.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetDefault("window.size", 512)
	v.SetDefault("window.fps", 60)
	v.SetDefault("window.scale", 1)
	v.SetDefault("window.title", "finstim")
	v.SetDefault("texture.size", 512)
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.dsn", "finstim.db")
	v.SetDefault("api.enabled", false)
	v.SetDefault("api.port", "8080")
	v.SetDefault("recording.enabled", true)
	v.SetDefault("recording.dir", "./sessions")
	v.SetDefault("logging.type", "console")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file_path", "finstim.log")
	v.SetDefault("logging.max_size", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 28)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	v.SetEnvPrefix("FINSTIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	err := v.Unmarshal(&cfg, func(c *mapstructure.DecoderConfig) {
		c.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoggerSettings maps the logging section to logger settings.
func (c *Config) LoggerSettings() logger.Settings {
	return logger.Settings{
		Type:       c.Logging.Type,
		Level:      c.Logging.Level,
		FilePath:   c.Logging.FilePath,
		MaxSize:    c.Logging.MaxSize,
		MaxBackups: c.Logging.MaxBackups,
		MaxAge:     c.Logging.MaxAge,
	}
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	if err := c.validateWindow(); err != nil {
		return err
	}
	if err := c.validateTexture(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateWindow() error {
	if c.Window.Size <= 0 {
		return errors.New("window.size must be positive")
	}
	if c.Window.FPS <= 0 {
		return errors.New("window.fps must be positive")
	}
	if c.Window.Scale <= 0 {
		return errors.New("window.scale must be positive")
	}
	return nil
}

func (c *Config) validateTexture() error {
	if c.Texture.Size <= 0 {
		return errors.New("texture.size must be positive")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.Enabled && c.API.Port == "" {
		return errors.New("api.port is required when api.enabled")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Type {
	case "console", "file":
	default:
		return errors.New("logging.type must be console or file")
	}
	switch c.Logging.Level {
	case "debug", "info", "warning", "error":
	default:
		return errors.New("logging.level must be debug, info, warning or error")
	}
	if c.Logging.Type == "file" && c.Logging.FilePath == "" {
		return errors.New("logging.file_path is required for file logging")
	}
	return nil
}
