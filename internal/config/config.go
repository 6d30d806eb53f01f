// Package config handles render configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/taigrr/rast/pkg/math3d"
)

// Render modes
const (
	ModeTextured  = "textured"
	ModeFlat      = "flat"
	ModeWireframe = "wireframe"
)

// Z-buffer modes
const (
	ZBufferShared   = "shared"
	ZBufferPerGroup = "per_group"
)

// Config holds all render settings.
type Config struct {
	Output    OutputConfig    `yaml:"output"`
	Model     ModelConfig     `yaml:"model"`
	Render    RenderConfig    `yaml:"render"`
	Camera    CameraConfig    `yaml:"camera"`
	Light     LightConfig     `yaml:"light"`
	Turntable TurntableConfig `yaml:"turntable"`
	Preview   bool            `yaml:"preview"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// OutputConfig describes the rendered image.
type OutputConfig struct {
	Path   string `yaml:"path"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Flip   bool   `yaml:"flip"`   // Flip vertically so the origin is bottom-left
	Format string `yaml:"format"` // Empty infers from the path extension
}

// ModelConfig selects the mesh and its texture.
type ModelConfig struct {
	Path    string `yaml:"path"`
	Texture string `yaml:"texture"`
	ZBuffer string `yaml:"zbuffer"` // shared or per_group
}

// RenderConfig holds rasterization settings.
type RenderConfig struct {
	Mode       string  `yaml:"mode"`
	Color      string  `yaml:"color"`      // Flat and wireframe color, "R,G,B"
	Background string  `yaml:"background"` // "R,G,B"
	Depth      float64 `yaml:"depth"`      // Depth range of the viewport
	RGBA       bool    `yaml:"rgba"`       // Keep an alpha channel in the framebuffer
}

// CameraConfig places the camera.
type CameraConfig struct {
	Eye    [3]float64 `yaml:"eye"`
	Center [3]float64 `yaml:"center"`
	Up     [3]float64 `yaml:"up"`
}

// LightConfig holds the directional light.
type LightConfig struct {
	Direction [3]float64 `yaml:"direction"`
}

// TurntableConfig renders an animation orbiting the model. Zero frames
// renders a single still.
type TurntableConfig struct {
	Frames    int     `yaml:"frames"`
	FPS       int     `yaml:"fps"`
	Frequency float64 `yaml:"frequency"` // Spring angular frequency
	Damping   float64 `yaml:"damping"`   // Spring damping ratio
	Workers   int     `yaml:"workers"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Path:   "out.png",
			Width:  800,
			Height: 800,
			Flip:   true,
		},
		Model: ModelConfig{
			ZBuffer: ZBufferShared,
		},
		Render: RenderConfig{
			Mode:       ModeTextured,
			Color:      "255,255,255",
			Background: "0,0,0",
			Depth:      255,
		},
		Camera: CameraConfig{
			Eye:    [3]float64{1, 1, 3},
			Center: [3]float64{0, 0, 0},
			Up:     [3]float64{0, 1, 0},
		},
		Light: LightConfig{
			Direction: [3]float64{0, 0, -1},
		},
		Turntable: TurntableConfig{
			FPS:       24,
			Frequency: 4.0,
			Damping:   1.0,
			Workers:   4,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	if c.Model.Path == "" {
		errs = append(errs, errors.New("model path is required"))
	}
	if c.Output.Width <= 0 || c.Output.Height <= 0 {
		errs = append(errs, fmt.Errorf("output size %dx%d must be positive", c.Output.Width, c.Output.Height))
	}

	switch c.Render.Mode {
	case ModeTextured, ModeFlat, ModeWireframe:
	default:
		errs = append(errs, fmt.Errorf("unknown render mode %q", c.Render.Mode))
	}
	switch c.Model.ZBuffer {
	case ZBufferShared, ZBufferPerGroup:
	default:
		errs = append(errs, fmt.Errorf("unknown zbuffer mode %q", c.Model.ZBuffer))
	}

	if _, err := ParseColor(c.Render.Color); err != nil {
		errs = append(errs, fmt.Errorf("render.color: %w", err))
	}
	if _, err := ParseColor(c.Render.Background); err != nil {
		errs = append(errs, fmt.Errorf("render.background: %w", err))
	}
	if c.Render.Depth <= 0 {
		errs = append(errs, fmt.Errorf("render.depth %v must be positive", c.Render.Depth))
	}

	if c.Light.Direction == [3]float64{} {
		errs = append(errs, errors.New("light direction must not be zero"))
	}
	eye, center, up := vec3(c.Camera.Eye), vec3(c.Camera.Center), vec3(c.Camera.Up)
	switch {
	case eye == center:
		errs = append(errs, errors.New("camera eye and center must differ"))
	case up.IsZero():
		errs = append(errs, errors.New("camera up must not be zero"))
	case eye.Sub(center).Cross(up).IsZero():
		errs = append(errs, errors.New("camera view direction must not be parallel to up"))
	}

	if c.Turntable.Frames < 0 {
		errs = append(errs, fmt.Errorf("turntable.frames %d must not be negative", c.Turntable.Frames))
	}
	if c.Turntable.Frames > 0 {
		if c.Turntable.FPS <= 0 {
			errs = append(errs, fmt.Errorf("turntable.fps %d must be positive", c.Turntable.FPS))
		}
		if c.Turntable.Workers <= 0 {
			errs = append(errs, fmt.Errorf("turntable.workers %d must be positive", c.Turntable.Workers))
		}
	}

	return errors.Join(errs...)
}

func vec3(a [3]float64) math3d.Vec3 {
	return math3d.V3(a[0], a[1], a[2])
}

// ParseColor parses an "R,G,B" triple of 0-255 integers.
func ParseColor(s string) ([3]uint8, error) {
	var rgb [3]uint8
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return rgb, fmt.Errorf("color %q: want R,G,B", s)
	}
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return rgb, fmt.Errorf("color %q: %w", s, err)
		}
		rgb[i] = uint8(v)
	}
	return rgb, nil
}
