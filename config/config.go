// Package config provides configuration loading and access for the
// viewer.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all viewer configuration.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Feed      FeedConfig      `yaml:"feed"`
	Render    RenderConfig    `yaml:"render"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ScreenConfig holds window settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// FeedConfig holds the snapshot stream settings.
type FeedConfig struct {
	URL string `yaml:"url"`
}

// RenderConfig holds rendering settings.
type RenderConfig struct {
	AssetDir    string `yaml:"asset_dir"`
	ShowEffects bool   `yaml:"show_effects"`

	// Seconds between cache maintenance sweeps
	MaintenanceSec float64 `yaml:"maintenance_sec"`
}

// TelemetryConfig holds frame telemetry settings.
type TelemetryConfig struct {
	// Seconds of frames aggregated per stats window
	WindowSec float64 `yaml:"window_sec"`
}

var global *Config

// Init loads configuration and makes it available via Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the loaded configuration.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load reads embedded defaults, then overlays the user file if given.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	return cfg, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
