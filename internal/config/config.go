// Package config handles player configuration loading and management.
package config

// Mode selects between editing and scroll-driven playback.
type Mode string

const (
	// ModePlayback loads the persisted snapshot and binds scrolling.
	ModePlayback Mode = "playback"
	// ModeAuthoring ignores the snapshot and enables the keyboard authoring session.
	ModeAuthoring Mode = "authoring"
)

// Config holds all player settings. It is built once at startup and passed by
// pointer to the components that need it; nothing mutates it afterwards.
type Config struct {
	Graphics    GraphicsConfig    `yaml:"graphics"`
	Logging     LoggingConfig     `yaml:"logging"`
	Timeline    TimelineConfig    `yaml:"timeline"`
	Scroll      ScrollConfig      `yaml:"scroll"`
	Environment EnvironmentConfig `yaml:"environment"`
	Caustics    CausticsConfig    `yaml:"caustics"`
	Scene       SceneConfig       `yaml:"scene"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// TimelineConfig describes the authored sequence and where it is persisted.
type TimelineConfig struct {
	Mode           Mode    `yaml:"mode"`
	StateURL       string  `yaml:"state_url"` // file path or http(s) URL
	ProjectName    string  `yaml:"project_name"`
	SheetName      string  `yaml:"sheet_name"`
	SequenceLength float32 `yaml:"sequence_length"` // seconds
	Watch          bool    `yaml:"watch"`           // reload the snapshot file on change
}

// ScrollConfig holds the scroll trigger settings.
type ScrollConfig struct {
	Trigger        string  `yaml:"trigger"`
	Start          string  `yaml:"start"`
	End            string  `yaml:"end"`
	Scrub          float32 `yaml:"scrub"`
	Markers        bool    `yaml:"markers"`
	PageHeight     float32 `yaml:"page_height"`      // virtual page height in pixels
	PixelsPerNotch float32 `yaml:"pixels_per_notch"` // wheel step
	Listen         string  `yaml:"listen"`           // websocket progress endpoint, empty disables
}

// EnvironmentConfig holds the surface/underwater parameters.
type EnvironmentConfig struct {
	WaterLevel     float32    `yaml:"water_level"`
	FogColor       [3]float32 `yaml:"fog_color"`
	FogDensity     float32    `yaml:"fog_density"`
	FogDepthScale  float32    `yaml:"fog_depth_scale"`
	LightIntensity float32    `yaml:"light_intensity"`
}

// CausticsConfig holds caustics compositor settings.
type CausticsConfig struct {
	Enabled    bool       `yaml:"enabled"`
	Backend    string     `yaml:"backend"` // "gpu" or "software"
	Resolution int        `yaml:"resolution"`
	Downsample int        `yaml:"downsample"` // software backend only
	Blur       float64    `yaml:"blur"`       // software backend only
	Tiling     float32    `yaml:"tiling"`
	Intensity  float32    `yaml:"intensity"`
	Speed      float32    `yaml:"speed"`
	Tint       [3]float32 `yaml:"tint"`
}

// SceneConfig holds scene assembly settings.
type SceneConfig struct {
	AssetDir    string     `yaml:"asset_dir"` // searched for relative model paths
	Landscape   string     `yaml:"landscape"`
	ModelScale  float32    `yaml:"model_scale"`
	Background  [3]float32 `yaml:"background"`
	WaterColor  [3]float32 `yaml:"water_color"`
	SurfaceSize float32    `yaml:"surface_size"`
	SeabedDepth float32    `yaml:"seabed_depth"` // below the water level
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Timeline: TimelineConfig{
			Mode:           ModePlayback,
			StateURL:       "animation.json",
			ProjectName:    "WebGL Project",
			SheetName:      "Main Scene",
			SequenceLength: 6,
		},
		Scroll: ScrollConfig{
			Trigger:        "body",
			Start:          "top top",
			End:            "bottom bottom",
			Scrub:          1,
			Markers:        false,
			PageHeight:     6000,
			PixelsPerNotch: 100,
		},
		Environment: EnvironmentConfig{
			WaterLevel:     0,
			FogColor:       [3]float32{0.05, 0.23, 0.31},
			FogDensity:     0.02,
			FogDepthScale:  0,
			LightIntensity: 1.5,
		},
		Caustics: CausticsConfig{
			Enabled:    true,
			Backend:    "gpu",
			Resolution: 512,
			Downsample: 2,
			Blur:       0,
			Tiling:     0.05,
			Intensity:  0.6,
			Speed:      1,
			Tint:       [3]float32{0.6, 0.9, 1.0},
		},
		Scene: SceneConfig{
			AssetDir:    "assets",
			Landscape:   "landscape.gltf",
			ModelScale:  40,
			Background:  [3]float32{0x1a / 255.0, 0x3a / 255.0, 0x4a / 255.0},
			WaterColor:  [3]float32{0x2d / 255.0, 0x72 / 255.0, 0x90 / 255.0},
			SurfaceSize: 4000,
			SeabedDepth: 30,
		},
	}
}
