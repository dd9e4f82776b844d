// Package commands implements the finstim CLI commands.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"finstim/display"
	"finstim/experiment"
	"finstim/internal/buildinfo"
	"finstim/internal/config"
	"finstim/internal/logger"
	"finstim/stimulus"
)

var configPath string

// InitCommonFlags registers flags shared by every command.
func InitCommonFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ./config.yaml)")
}

// setup loads configuration and builds the logger.
func setup() (*config.Config, logger.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logger.New(cfg.LoggerSettings())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.Info("finstim ", buildinfo.Short())
	return cfg, log, nil
}

// displayOptions maps the window section to host options.
func displayOptions(cfg *config.Config) display.Options {
	return display.Options{
		WindowSize: cfg.Window.Size,
		Title:      cfg.Window.Title,
		FPS:        cfg.Window.FPS,
		Scale:      cfg.Window.Scale,
	}
}

// addTextureFlags registers the flags selecting and shaping a texture.
func addTextureFlags(cmd *cobra.Command) {
	cmd.Flags().String("kind", "sin", "Texture kind: sin, sin16, grating, sin_rgb, grating_rgb, flat_rgb, checkerboard, circle")
	cmd.Flags().Float64("freq", 8, "Spatial frequency in cycles per texture")
	cmd.Flags().IntSlice("rgb", nil, "Texture color as R,G,B (0-255)")
	cmd.Flags().Int("check-size", 0, "Checker side length in pixels (checkerboard)")
	cmd.Flags().Int("radius", 0, "Circle radius in pixels (circle)")
	cmd.Flags().Int("size", 0, "Texture side length in pixels (default from config)")
}

// specFromFlags builds a stimulus spec from the texture flags.
func specFromFlags(cmd *cobra.Command) (experiment.StimulusSpec, error) {
	var spec experiment.StimulusSpec
	var err error

	if spec.Kind, err = cmd.Flags().GetString("kind"); err != nil {
		return spec, err
	}
	if spec.SpatialFreq, err = cmd.Flags().GetFloat64("freq"); err != nil {
		return spec, err
	}
	if spec.RGB, err = cmd.Flags().GetIntSlice("rgb"); err != nil {
		return spec, err
	}
	if spec.CheckSize, err = cmd.Flags().GetInt("check-size"); err != nil {
		return spec, err
	}
	if spec.Radius, err = cmd.Flags().GetInt("radius"); err != nil {
		return spec, err
	}
	return spec, nil
}

// textureSize resolves the texture size flag against the config.
func textureSize(cmd *cobra.Command, cfg *config.Config) (int, error) {
	size, err := cmd.Flags().GetInt("size")
	if err != nil {
		return 0, err
	}
	if size <= 0 {
		size = cfg.Texture.Size
	}
	return size, nil
}

// present shows a single stimulus until the window is closed.
func present(stim stimulus.Stimulus, cfg *config.Config, log logger.Logger) error {
	log.Info("presenting ", stim.Name())
	opts := displayOptions(cfg)
	if opts.Title == "" || opts.Title == "finstim" {
		opts.Title = "finstim: " + stim.Name()
	}
	return display.Run(stim, opts)
}
