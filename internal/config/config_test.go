package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/multierr"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 || cfg.Graphics.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.Host != HostImGui {
		t.Errorf("expected host %q, got %q", HostImGui, cfg.Graphics.Host)
	}

	if len(cfg.Views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(cfg.Views))
	}
	if cfg.Views[0].Camera != CameraMain || cfg.Views[1].Camera != CameraOverview {
		t.Errorf("unexpected view cameras: %q, %q", cfg.Views[0].Camera, cfg.Views[1].Camera)
	}

	main := cfg.Cameras.Main
	if main.FOV != 45 || main.Near != 5 || main.Far != 100 {
		t.Errorf("unexpected main camera %+v", main)
	}
	if cfg.Constraint.Gap != 0.1 {
		t.Errorf("expected gap 0.1, got %v", cfg.Constraint.Gap)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFileYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 800
  height: 600
  host: sdl

views:
  - name: left
    left: 0
    top: 0
    width: 0.25
    height: 1
    background: "#102030"
    camera: main
  - name: right
    left: 0.25
    top: 0
    width: 0.75
    height: 1
    background: "#000040"
    camera: overview

cameras:
  main:
    fov: 50
    near: 1
    far: 40
    position: [1, 2, 3]
    target: [0, 0, 0]

logging:
  level: "debug"
  log_file: "splitview.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 800 || cfg.Graphics.Host != HostSDL {
		t.Errorf("graphics not loaded: %+v", cfg.Graphics)
	}
	if !cfg.Graphics.VSync {
		t.Error("vsync default should survive a partial file")
	}
	if len(cfg.Views) != 2 || cfg.Views[0].Name != "left" || cfg.Views[1].Width != 0.75 {
		t.Errorf("views not replaced: %+v", cfg.Views)
	}
	if cfg.Cameras.Main.Position != [3]float32{1, 2, 3} {
		t.Errorf("expected main position [1 2 3], got %v", cfg.Cameras.Main.Position)
	}
	if cfg.Cameras.Overview.FOV != 60 {
		t.Errorf("overview camera should keep defaults, got fov %v", cfg.Cameras.Overview.FOV)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "splitview.log" {
		t.Errorf("logging not loaded: %+v", cfg.Logging)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config should validate: %v", err)
	}
}

func TestLoadFromFileTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")

	tomlContent := `
[graphics]
width = 1024
height = 768

[constraint]
gap = 0.5

[[views]]
name = "only"
left = 0.0
top = 0.0
width = 1.0
height = 1.0
background = "#8AC"
camera = "overview"
`
	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1024 || cfg.Graphics.Height != 768 {
		t.Errorf("expected 1024x768, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Constraint.Gap != 0.5 {
		t.Errorf("expected gap 0.5, got %v", cfg.Constraint.Gap)
	}
	if len(cfg.Views) != 1 || cfg.Views[0].Name != "only" {
		t.Errorf("expected a single view, got %+v", cfg.Views)
	}
}

func TestLoadFromFileTOMLUnknownField(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[graphics]\nwidht = 3\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error for misspelt key")
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

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
	if len(cfg.Views) != 2 {
		t.Errorf("default views should survive a failed load, got %d", len(cfg.Views))
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Graphics.Host = "vulkan"
	cfg.Views[1].Name = cfg.Views[0].Name
	cfg.Views[0].Background = "not-a-colour"
	cfg.Cameras.Main.Near = 200
	cfg.Panel.Near = RangeConfig{Min: 5, Max: 1}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	if n := len(multierr.Errors(err)); n != 5 {
		t.Errorf("expected 5 errors, got %d: %v", n, err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		hex  string
		want [3]float32
	}{
		{"#000000", [3]float32{0, 0, 0}},
		{"#ffffff", [3]float32{1, 1, 1}},
		{"#000040", [3]float32{0, 0, 64.0 / 255.0}},
		{"#8AC", [3]float32{0x88 / 255.0, 0xAA / 255.0, 0xCC / 255.0}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.hex)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.hex, err)
			continue
		}
		for i := range got {
			if d := got[i] - tt.want[i]; d > 1e-5 || d < -1e-5 {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.hex, got, tt.want)
				break
			}
		}
	}

	if _, err := ParseColor("blue"); err == nil {
		t.Error("expected error for named colour")
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
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("config.toml", []byte("[graphics]\nwidth = 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); filepath.Base(path) != "config.toml" {
		t.Errorf("expected to find config.toml, got %q", path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Debug.WatchConfig {
					t.Error("expected config watch with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 800
				*flagHeight = 600
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 800 || cfg.Graphics.Height != 600 {
					t.Errorf("expected 800x600, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "host flag",
			setup: func() { *flagHost = HostSDL },
			verify: func(cfg *Config) {
				if cfg.Graphics.Host != HostSDL {
					t.Errorf("expected host sdl, got %s", cfg.Graphics.Host)
				}
			},
			teardown: func() { *flagHost = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"out.yaml", "out.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)

			cfg := Default()
			cfg.Graphics.Width = 999
			cfg.Views[1].Background = "#123456"
			if err := cfg.SaveTo(path); err != nil {
				t.Fatalf("SaveTo: %v", err)
			}

			loaded, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			if loaded.Graphics.Width != 999 {
				t.Errorf("expected width 999, got %d", loaded.Graphics.Width)
			}
			if loaded.Views[1].Background != "#123456" {
				t.Errorf("expected background #123456, got %s", loaded.Views[1].Background)
			}
		})
	}
}

func TestWatchDeliversReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("graphics:\n  width: 640\n  height: 480\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	updates, err := Watch(ctx, path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	// An invalid write is skipped, the next valid one is delivered.
	if err := os.WriteFile(path, []byte("graphics:\n  width: -1\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(path, []byte("graphics:\n  width: 320\n  height: 240\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	for {
		select {
		case cfg, ok := <-updates:
			if !ok {
				t.Fatal("updates closed before reload")
			}
			if cfg.Graphics.Width == 320 {
				cancel()
				for range updates {
				}
				return
			}
		case <-ctx.Done():
			t.Fatal("timed out waiting for reload")
		}
	}
}
