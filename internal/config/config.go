// Package config loads render settings from a JSON file and overlays
// command-line flags and defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"slices"
	"strings"

	"cg-rasterizer/internal/output"
)

// Config holds all configurable scene and render settings.
type Config struct {
	// Frame
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Supersample   int    `json:"supersample"`
	Strategy      string `json:"strategy"`       // "span" or "bbox"
	RasterWorkers int    `json:"raster_workers"` // goroutines per triangle fill

	// Camera
	FOV    float64     `json:"fov"` // degrees
	Near   float64     `json:"near"`
	Far    float64     `json:"far"`
	Eye    *[3]float64 `json:"eye"`
	Center *[3]float64 `json:"center"`
	Up     *[3]float64 `json:"up"`

	// Scene
	Mesh       string     `json:"mesh"`        // primitive name or .obj path
	Texture    string     `json:"texture"`     // file path, or a name looked up in TextureDir
	TextureDir string     `json:"texture_dir"` // searched recursively
	Mode       string     `json:"mode"`        // color, flat, texture, wireframe
	Color      *[3]uint8  `json:"color"`       // flat and wireframe color
	Rotation   [3]float64 `json:"rotation"`    // model Euler XYZ, degrees
	Fit        bool       `json:"fit"`         // move the eye so the mesh fills the view
	Scale      float64    `json:"scale"`
	Background *[3]uint8  `json:"background"`

	// Output
	Views     int    `json:"views"` // orbit views around the center
	OutputDir string `json:"output_dir"`
	Format    string `json:"format"` // one of output.FrameFormats
	Depth     string `json:"depth"`  // "", exr or png
	Workers   int    `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width       int
	Height      int
	Mesh        string
	Texture     string
	Mode        string
	Strategy    string
	Views       int
	OutputDir   string
	Format      string
	Depth       string
	Workers     int
	Supersample int
	Fit         bool
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	setInt(&c.Width, flags.Width)
	setInt(&c.Height, flags.Height)
	setInt(&c.Views, flags.Views)
	setInt(&c.Workers, flags.Workers)
	setInt(&c.Supersample, flags.Supersample)
	setString(&c.Mesh, flags.Mesh)
	setString(&c.Texture, flags.Texture)
	setString(&c.Mode, flags.Mode)
	setString(&c.Strategy, flags.Strategy)
	setString(&c.OutputDir, flags.OutputDir)
	setString(&c.Format, flags.Format)
	setString(&c.Depth, flags.Depth)
	if flags.Fit {
		c.Fit = true
	}

	// Defaults for render settings
	defInt(&c.Width, 640)
	defInt(&c.Height, 480)
	defInt(&c.Supersample, 1)
	defInt(&c.RasterWorkers, 1)
	defInt(&c.Views, 1)
	defInt(&c.Workers, runtime.NumCPU())
	defFloat(&c.FOV, 60)
	defFloat(&c.Near, 0.1)
	defFloat(&c.Far, 1000)
	defFloat(&c.Scale, 1)
	if c.Eye == nil {
		c.Eye = &[3]float64{0, 1.5, 4}
	}
	if c.Center == nil {
		c.Center = &[3]float64{}
	}
	if c.Up == nil {
		c.Up = &[3]float64{0, 1, 0}
	}
	if c.Color == nil {
		c.Color = &[3]uint8{255, 255, 255}
	}
	if c.Background == nil {
		c.Background = &[3]uint8{40, 45, 60}
	}

	if c.Mesh == "" {
		c.Mesh = "cube"
	}
	if c.Mode == "" {
		c.Mode = "color"
		if c.Texture != "" {
			c.Mode = "texture"
		}
	}
	if c.Strategy == "" {
		c.Strategy = "span"
	}
	if c.OutputDir == "" {
		c.OutputDir = "out"
	}
	if c.Format == "" {
		c.Format = "tga"
	}
	c.Mode = strings.ToLower(c.Mode)
	c.Strategy = strings.ToLower(c.Strategy)
	c.Format = strings.ToLower(strings.TrimPrefix(c.Format, "."))
	c.Depth = strings.ToLower(strings.TrimPrefix(c.Depth, "."))
}

// Validate reports every setting Resolve could not make usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("frame size %dx%d", c.Width, c.Height))
	}
	if c.Near <= 0 || c.Far <= c.Near {
		errs = append(errs, fmt.Errorf("near %v / far %v", c.Near, c.Far))
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		errs = append(errs, fmt.Errorf("fov %v", c.FOV))
	}
	if !slices.Contains([]string{"span", "bbox"}, c.Strategy) {
		errs = append(errs, fmt.Errorf("strategy %q", c.Strategy))
	}
	if !slices.Contains([]string{"color", "flat", "texture", "wireframe"}, c.Mode) {
		errs = append(errs, fmt.Errorf("mode %q", c.Mode))
	}
	if !slices.Contains(output.FrameFormats, c.Format) {
		errs = append(errs, fmt.Errorf("format %q", c.Format))
	}
	if !slices.Contains([]string{"", "exr", "png"}, c.Depth) {
		errs = append(errs, fmt.Errorf("depth format %q", c.Depth))
	}
	if c.Eye != nil && c.Center != nil && *c.Eye == *c.Center {
		errs = append(errs, errors.New("eye equals center"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

// Aspect returns Width / Height.
func (c *Config) Aspect() float64 {
	if c.Height == 0 {
		return 1
	}
	return float64(c.Width) / float64(c.Height)
}

func setInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func defInt(dst *int, v int) {
	if *dst <= 0 {
		*dst = v
	}
}

func defFloat(dst *float64, v float64) {
	if *dst <= 0 {
		*dst = v
	}
}
