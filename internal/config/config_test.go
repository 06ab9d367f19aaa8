package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test timeline defaults
	if cfg.Timeline.Mode != ModePlayback {
		t.Errorf("expected playback mode, got %s", cfg.Timeline.Mode)
	}
	if cfg.Timeline.SequenceLength != 6 {
		t.Errorf("expected sequence length 6, got %v", cfg.Timeline.SequenceLength)
	}
	if cfg.Timeline.SheetName != "Main Scene" {
		t.Errorf("expected sheet 'Main Scene', got %s", cfg.Timeline.SheetName)
	}

	// Test scroll defaults
	if cfg.Scroll.Start != "top top" || cfg.Scroll.End != "bottom bottom" {
		t.Errorf("unexpected markers %q / %q", cfg.Scroll.Start, cfg.Scroll.End)
	}
	if cfg.Scroll.Scrub != 1 {
		t.Errorf("expected scrub 1, got %v", cfg.Scroll.Scrub)
	}

	// Test caustics defaults
	if cfg.Caustics.Resolution != 512 {
		t.Errorf("expected caustics resolution 512, got %d", cfg.Caustics.Resolution)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true

timeline:
  mode: authoring
  state_url: "https://example.com/animation.json"
  sequence_length: 12

scroll:
  start: "top center"
  end: "bottom 80%"
  scrub: 0.5
  markers: true

environment:
  water_level: -3
  fog_density: 0.05

caustics:
  backend: software
  resolution: 256

logging:
  level: "debug"
  log_file: "player.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Timeline.Mode != ModeAuthoring {
		t.Errorf("expected authoring mode, got %s", cfg.Timeline.Mode)
	}
	if cfg.Timeline.SequenceLength != 12 {
		t.Errorf("expected sequence length 12, got %v", cfg.Timeline.SequenceLength)
	}
	if cfg.Scroll.End != "bottom 80%" {
		t.Errorf("expected end marker 'bottom 80%%', got %q", cfg.Scroll.End)
	}
	if cfg.Scroll.Scrub != 0.5 {
		t.Errorf("expected scrub 0.5, got %v", cfg.Scroll.Scrub)
	}
	if cfg.Environment.WaterLevel != -3 {
		t.Errorf("expected water level -3, got %v", cfg.Environment.WaterLevel)
	}
	if cfg.Caustics.Backend != "software" || cfg.Caustics.Resolution != 256 {
		t.Errorf("unexpected caustics %+v", cfg.Caustics)
	}
	// Untouched sections keep their defaults
	if cfg.Caustics.Tiling != Default().Caustics.Tiling {
		t.Errorf("expected default tiling, got %v", cfg.Caustics.Tiling)
	}
	if cfg.Logging.LogFile != "player.log" {
		t.Errorf("expected log file 'player.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown mode", func(c *Config) { c.Timeline.Mode = "studio" }},
		{"zero length", func(c *Config) { c.Timeline.SequenceLength = 0 }},
		{"negative scrub", func(c *Config) { c.Scroll.Scrub = -1 }},
		{"bad start marker", func(c *Config) { c.Scroll.Start = "top sideways" }},
		{"bad end marker", func(c *Config) { c.Scroll.End = "" }},
		{"zero page", func(c *Config) { c.Scroll.PageHeight = 0 }},
		{"zero resolution", func(c *Config) { c.Caustics.Resolution = 0 }},
		{"unknown backend", func(c *Config) { c.Caustics.Backend = "vulkan" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Scroll.Markers {
					t.Error("expected markers to be enabled with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "authoring flag",
			setup: func() { *flagAuthoring = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Timeline.Mode != ModeAuthoring {
					t.Errorf("expected authoring mode, got %s", cfg.Timeline.Mode)
				}
			},
			teardown: func() { *flagAuthoring = false },
		},
		{
			name:  "state flag",
			setup: func() { *flagState = "/tmp/anim.yaml" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Timeline.StateURL != "/tmp/anim.yaml" {
					t.Errorf("expected state url override, got %s", cfg.Timeline.StateURL)
				}
			},
			teardown: func() { *flagState = "" },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Scroll.Scrub = 2.5
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Scroll.Scrub != 2.5 {
		t.Errorf("expected scrub 2.5 after round trip, got %v", loaded.Scroll.Scrub)
	}
}
