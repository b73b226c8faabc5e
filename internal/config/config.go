// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics" toml:"graphics"`
	Views      []ViewConfig     `yaml:"views" toml:"views"`
	Cameras    CamerasConfig    `yaml:"cameras" toml:"cameras"`
	Constraint ConstraintConfig `yaml:"constraint" toml:"constraint"`
	Panel      PanelConfig      `yaml:"panel" toml:"panel"`
	Scene      SceneConfig      `yaml:"scene" toml:"scene"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`
	Debug      DebugConfig      `yaml:"debug" toml:"debug"`
}

// Host names.
const (
	HostImGui = "imgui"
	HostSDL   = "sdl"
)

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool   `yaml:"vsync" toml:"vsync"`
	Host       string `yaml:"host" toml:"host"` // imgui or sdl
}

// ViewConfig places one view over the window. Left, Top, Width and Height
// are fractions of the window size; values outside [0,1] put the view partly
// off-screen.
type ViewConfig struct {
	Name       string  `yaml:"name" toml:"name"`
	Left       float32 `yaml:"left" toml:"left"`
	Top        float32 `yaml:"top" toml:"top"`
	Width      float32 `yaml:"width" toml:"width"`
	Height     float32 `yaml:"height" toml:"height"`
	Background string  `yaml:"background" toml:"background"` // hex colour
	Camera     string  `yaml:"camera" toml:"camera"`         // main or overview
}

// Camera names.
const (
	CameraMain     = "main"
	CameraOverview = "overview"
)

// CameraConfig holds the initial state of a camera.
type CameraConfig struct {
	FOV      float32    `yaml:"fov" toml:"fov"`
	Near     float32    `yaml:"near" toml:"near"`
	Far      float32    `yaml:"far" toml:"far"`
	Position [3]float32 `yaml:"position" toml:"position"`
	Target   [3]float32 `yaml:"target" toml:"target"`
}

// CamerasConfig holds the two cameras. The overview camera shows the main
// camera's frustum.
type CamerasConfig struct {
	Main     CameraConfig `yaml:"main" toml:"main"`
	Overview CameraConfig `yaml:"overview" toml:"overview"`
}

// ConstraintConfig holds the near/far coupling.
type ConstraintConfig struct {
	Gap float32 `yaml:"gap" toml:"gap"`
}

// RangeConfig is a slider range.
type RangeConfig struct {
	Min  float32 `yaml:"min" toml:"min"`
	Max  float32 `yaml:"max" toml:"max"`
	Step float32 `yaml:"step" toml:"step"`
}

// PanelConfig holds the parameter panel slider ranges.
type PanelConfig struct {
	FOV  RangeConfig `yaml:"fov" toml:"fov"`
	Near RangeConfig `yaml:"near" toml:"near"`
	Far  RangeConfig `yaml:"far" toml:"far"`
}

// SceneConfig holds scene content settings.
type SceneConfig struct {
	Texture     string  `yaml:"texture" toml:"texture"`     // floor and wall texture: checker[:N], path or URL
	TileSize    float32 `yaml:"tile_size" toml:"tile_size"` // world units per texture repeat
	CubeColor   string  `yaml:"cube_color" toml:"cube_color"`
	SphereColor string  `yaml:"sphere_color" toml:"sphere_color"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
	// Per-tick diagnostics: first N entries per second, then every Mth.
	FrameInitial    int `yaml:"frame_initial" toml:"frame_initial"`
	FrameThereafter int `yaml:"frame_thereafter" toml:"frame_thereafter"`
}

// DebugConfig holds debugging aids.
type DebugConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir" toml:"screenshot_dir"`
	WatchConfig   bool   `yaml:"watch_config" toml:"watch_config"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			Host:       HostImGui,
		},
		Views: []ViewConfig{
			{Name: "view1", Left: 0, Top: 0, Width: 0.5, Height: 1, Background: "#000000", Camera: CameraMain},
			{Name: "view2", Left: 0.5, Top: 0, Width: 0.5, Height: 1, Background: "#000040", Camera: CameraOverview},
		},
		Cameras: CamerasConfig{
			Main: CameraConfig{
				FOV:      45,
				Near:     5,
				Far:      100,
				Position: [3]float32{0, 30, 20},
				Target:   [3]float32{0, 5, 0},
			},
			Overview: CameraConfig{
				FOV:      60,
				Near:     0.1,
				Far:      500,
				Position: [3]float32{40, 10, 30},
				Target:   [3]float32{0, 0, 0},
			},
		},
		Constraint: ConstraintConfig{Gap: 0.1},
		Panel: PanelConfig{
			FOV:  RangeConfig{Min: 1, Max: 180},
			Near: RangeConfig{Min: 0.1, Max: 50, Step: 0.1},
			Far:  RangeConfig{Min: 0.1, Max: 50, Step: 0.1},
		},
		Scene: SceneConfig{
			Texture:     "checker",
			TileSize:    2,
			CubeColor:   "#8AC",
			SphereColor: "#CA8",
		},
		Logging: LoggingConfig{
			Level:           "info",
			LogFile:         "",
			FrameInitial:    3,
			FrameThereafter: 120,
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
			WatchConfig:   false,
		},
	}
}

// View returns the view with the given name.
func (c *Config) View(name string) (ViewConfig, bool) {
	for _, v := range c.Views {
		if v.Name == name {
			return v, true
		}
	}
	return ViewConfig{}, false
}
