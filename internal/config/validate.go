package config

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/multierr"
)

// ParseColor parses a hex colour ("#rgb" or "#rrggbb") into
// sRGB components in [0,1].
func ParseColor(hex string) ([3]float32, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return [3]float32{}, fmt.Errorf("colour %q: %w", hex, err)
	}
	return [3]float32{float32(c.R), float32(c.G), float32(c.B)}, nil
}

// Validate reports every problem in the config at once.
func (c *Config) Validate() error {
	var err error

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("graphics: size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	switch c.Graphics.Host {
	case HostImGui, HostSDL:
	default:
		err = multierr.Append(err, fmt.Errorf("graphics: unknown host %q", c.Graphics.Host))
	}

	if len(c.Views) == 0 {
		err = multierr.Append(err, fmt.Errorf("views: at least one view is required"))
	}
	seen := make(map[string]bool, len(c.Views))
	for i, v := range c.Views {
		if v.Name == "" {
			err = multierr.Append(err, fmt.Errorf("views[%d]: name is required", i))
		} else if seen[v.Name] {
			err = multierr.Append(err, fmt.Errorf("views[%d]: duplicate name %q", i, v.Name))
		}
		seen[v.Name] = true

		if _, cerr := ParseColor(v.Background); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("views[%d]: %w", i, cerr))
		}
		switch v.Camera {
		case CameraMain, CameraOverview:
		default:
			err = multierr.Append(err, fmt.Errorf("views[%d]: unknown camera %q", i, v.Camera))
		}
	}

	err = multierr.Append(err, c.Cameras.Main.validate(CameraMain))
	err = multierr.Append(err, c.Cameras.Overview.validate(CameraOverview))

	if c.Constraint.Gap < 0 {
		err = multierr.Append(err, fmt.Errorf("constraint: gap %v must not be negative", c.Constraint.Gap))
	}

	err = multierr.Append(err, c.Panel.FOV.validate("panel.fov"))
	err = multierr.Append(err, c.Panel.Near.validate("panel.near"))
	err = multierr.Append(err, c.Panel.Far.validate("panel.far"))

	for name, hex := range map[string]string{
		"scene.cube_color":   c.Scene.CubeColor,
		"scene.sphere_color": c.Scene.SphereColor,
	} {
		if _, cerr := ParseColor(hex); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", name, cerr))
		}
	}
	if c.Scene.TileSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("scene: tile size %v must be positive", c.Scene.TileSize))
	}

	return err
}

func (c CameraConfig) validate(name string) error {
	var err error
	if c.FOV <= 0 || c.FOV >= 180 {
		err = multierr.Append(err, fmt.Errorf("cameras.%s: fov %v out of (0,180)", name, c.FOV))
	}
	if c.Near <= 0 || c.Far <= c.Near {
		err = multierr.Append(err, fmt.Errorf("cameras.%s: need 0 < near < far, got %v/%v", name, c.Near, c.Far))
	}
	if c.Position == c.Target {
		err = multierr.Append(err, fmt.Errorf("cameras.%s: position equals target", name))
	}
	return err
}

func (r RangeConfig) validate(name string) error {
	if r.Min >= r.Max {
		return fmt.Errorf("%s: min %v must be below max %v", name, r.Min, r.Max)
	}
	if r.Step < 0 {
		return fmt.Errorf("%s: step %v must not be negative", name, r.Step)
	}
	return nil
}
