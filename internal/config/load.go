package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/divescroll/internal/scroll"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate reports settings the player cannot run with.
func (c *Config) Validate() error {
	var errs []error
	switch c.Timeline.Mode {
	case ModePlayback, ModeAuthoring:
	default:
		errs = append(errs, fmt.Errorf("timeline.mode: unknown mode %q", c.Timeline.Mode))
	}
	if c.Timeline.SequenceLength <= 0 {
		errs = append(errs, fmt.Errorf("timeline.sequence_length must be positive, got %v", c.Timeline.SequenceLength))
	}
	if _, err := scroll.ParseMarker(c.Scroll.Start); err != nil {
		errs = append(errs, fmt.Errorf("scroll.start: %w", err))
	}
	if _, err := scroll.ParseMarker(c.Scroll.End); err != nil {
		errs = append(errs, fmt.Errorf("scroll.end: %w", err))
	}
	if c.Scroll.Scrub < 0 {
		errs = append(errs, fmt.Errorf("scroll.scrub must not be negative, got %v", c.Scroll.Scrub))
	}
	if c.Scroll.PageHeight <= 0 {
		errs = append(errs, fmt.Errorf("scroll.page_height must be positive, got %v", c.Scroll.PageHeight))
	}
	if c.Caustics.Resolution < 1 {
		errs = append(errs, fmt.Errorf("caustics.resolution must be at least 1, got %d", c.Caustics.Resolution))
	}
	switch c.Caustics.Backend {
	case "gpu", "software":
	default:
		errs = append(errs, fmt.Errorf("caustics.backend: unknown backend %q", c.Caustics.Backend))
	}
	return errors.Join(errs...)
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "DiveScroll")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "DiveScroll")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "divescroll")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "divescroll")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
