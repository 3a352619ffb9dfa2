// Package config loads the breathing widget configuration: default phase
// durations, slider bounds and window settings. Defaults ship embedded with
// the binary and may be overlaid by a user YAML file. Nothing is ever written
// back; slider changes made in the window live only for the session.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"Breathe/timer"

	"gopkg.in/yaml.v3"
)

// DefaultsAsset is the embedded file holding the shipped defaults.
const DefaultsAsset = "assets/breathing.yaml"

// ContentReader reads files from the embedded assets.
type ContentReader interface {
	ReadFile(name string) ([]byte, error)
}

// DefaultConfigPath returns the user config file path:
// $BREATHE_CONFIG, else $XDG_CONFIG_HOME/breathe/config.yaml or ~/.config/breathe/config.yaml
func DefaultConfigPath() string {
	if p := os.Getenv("BREATHE_CONFIG"); p != "" {
		return p
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "breathe", "config.yaml")
}

// Config represents the top-level configuration.
type Config struct {
	Breathing timer.Durations `yaml:"breathing"`
	Bounds    timer.Bounds    `yaml:"bounds"`
	Window    WindowConfig    `yaml:"window"`
	Language  string          `yaml:"language"` // "en", "pt", "es"; empty detects from the system
	Watch     bool            `yaml:"watch"`    // reload the user file when it changes
}

// WindowConfig defines the main window settings.
type WindowConfig struct {
	Width       int  `yaml:"width"`
	Height      int  `yaml:"height"`
	SidebarOpen bool `yaml:"sidebar_open"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Breathing: timer.DefaultDurations,
		Bounds:    timer.DefaultBounds,
		Window: WindowConfig{
			Width:       timer.WindowWidth,
			Height:      timer.WindowHeight,
			SidebarOpen: true,
		},
		Watch: true,
	}
}

// Parse overlays YAML data on a copy of base and validates the result.
func Parse(data []byte, base *Config) (*Config, error) {
	if base == nil {
		base = DefaultConfig()
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefaults reads the embedded defaults on top of DefaultConfig.
func LoadDefaults(reader ContentReader) (*Config, error) {
	data, err := reader.ReadFile(DefaultsAsset)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", DefaultsAsset, err)
	}
	return Parse(data, DefaultConfig())
}

// Load overlays the YAML file at path on base.
func Load(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data, base)
}

// LoadOrDefault behaves like Load but treats a missing file or an empty path
// as "no overrides".
func LoadOrDefault(path string, base *Config) (*Config, error) {
	if base == nil {
		base = DefaultConfig()
	}
	if path == "" {
		return base, nil
	}
	cfg, err := Load(path, base)
	if errors.Is(err, fs.ErrNotExist) {
		return base, nil
	}
	return cfg, err
}

// Validate checks bounds, durations and window size.
func (c *Config) Validate() error {
	if err := c.Bounds.Validate(); err != nil {
		return fmt.Errorf("invalid bounds: %w", err)
	}
	if err := c.Breathing.Validate(); err != nil {
		return fmt.Errorf("invalid breathing durations: %w", err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}

// Durations returns the configured durations pinned into the slider bounds.
func (c *Config) Durations() timer.Durations {
	return c.Bounds.Clamp(c.Breathing)
}
