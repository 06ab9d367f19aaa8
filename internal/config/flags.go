package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging and scroll markers")
	flagAuthoring  = flag.Bool("authoring", false, "Start in authoring mode")
	flagState      = flag.String("state", "", "Animation snapshot path or URL")
	flagWatch      = flag.Bool("watch", false, "Reload the animation snapshot when it changes")
	flagListen     = flag.String("listen", "", "Address for the websocket progress endpoint")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")

	flagWriteConfig  = flag.String("write-config", "", "Write the effective config to this path and exit")
	flagDumpCaustics = flag.String("dump-caustics", "", "Write a caustics frame PNG to this directory and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigPath returns the --write-config destination, if any.
func WriteConfigPath() string {
	return *flagWriteConfig
}

// DumpCausticsDir returns the --dump-caustics directory, if any.
func DumpCausticsDir() string {
	return *flagDumpCaustics
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Scroll.Markers = true
	}
	if *flagAuthoring {
		cfg.Timeline.Mode = ModeAuthoring
	}
	if *flagState != "" {
		cfg.Timeline.StateURL = *flagState
	}
	if *flagWatch {
		cfg.Timeline.Watch = true
	}
	if *flagListen != "" {
		cfg.Scroll.Listen = *flagListen
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
