package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/reflow/internal/growth"
	"gopkg.in/yaml.v3"
)

const (
	DefaultNumInitialCurves    = 3
	DefaultSegmentLength       = 20.0
	DefaultRepulsionRadius     = 70.0
	DefaultRepulsionStrength   = 0.10
	DefaultRandomness          = 0.5
	DefaultGrowthRate          = 3
	DefaultMaxSegmentsPerCurve = 300
	DefaultLineThickness       = 1.0
	DefaultLineColor           = Color("#4c6121")
	DefaultBackgroundColor     = Color("#ede3df")
	DefaultHueShift            = 180.0
	DefaultHueRangeWidth       = 270.0
	DefaultWidth               = 800.0
	DefaultHeight              = 800.0
	DefaultFrames              = 600
)

var (
	ErrInvalidConfig = errors.New("config: invalid value")
	ErrUnknownPreset = errors.New("config: unknown preset")
)

// Color is a #rrggbb hex string.
type Color string

// RGBA parses the color. Malformed values yield an error.
func (c Color) RGBA() (color.RGBA, error) {
	cf, err := colorful.Hex(string(c))
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: color %q", ErrInvalidConfig, string(c))
	}
	r, g, b := cf.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// Config is the full parameter set. The live UI owns one mutable Config and
// hands a pointer to every tick, so edits take effect on the next growth
// step.
type Config struct {
	NumInitialCurves    int     `yaml:"num_initial_curves" json:"num_initial_curves"`
	SegmentLength       float64 `yaml:"segment_length" json:"segment_length"`
	RepulsionRadius     float64 `yaml:"repulsion_radius" json:"repulsion_radius"`
	RepulsionStrength   float64 `yaml:"repulsion_strength" json:"repulsion_strength"`
	Randomness          float64 `yaml:"randomness" json:"randomness"`
	GrowthRate          int     `yaml:"growth_rate" json:"growth_rate"`
	MaxSegmentsPerCurve int     `yaml:"max_segments_per_curve" json:"max_segments_per_curve"`
	LineThickness       float64 `yaml:"line_thickness" json:"line_thickness"`
	LineColor           Color   `yaml:"line_color" json:"line_color"`
	BackgroundColor     Color   `yaml:"background_color" json:"background_color"`
	Freeze              bool    `yaml:"freeze" json:"freeze"`
	DynamicColor        bool    `yaml:"dynamic_color" json:"dynamic_color"`
	HueShift            float64 `yaml:"hue_shift" json:"hue_shift"`
	// HueRangeWidth is carried for UI compatibility; growth never reads it.
	HueRangeWidth float64 `yaml:"hue_range_width" json:"hue_range_width"`

	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
	Seed   int64   `yaml:"seed" json:"seed"`
	Frames int     `yaml:"frames" json:"frames"`
}

func DefaultConfig() *Config {
	return &Config{
		NumInitialCurves:    DefaultNumInitialCurves,
		SegmentLength:       DefaultSegmentLength,
		RepulsionRadius:     DefaultRepulsionRadius,
		RepulsionStrength:   DefaultRepulsionStrength,
		Randomness:          DefaultRandomness,
		GrowthRate:          DefaultGrowthRate,
		MaxSegmentsPerCurve: DefaultMaxSegmentsPerCurve,
		LineThickness:       DefaultLineThickness,
		LineColor:           DefaultLineColor,
		BackgroundColor:     DefaultBackgroundColor,
		DynamicColor:        true,
		HueShift:            DefaultHueShift,
		HueRangeWidth:       DefaultHueRangeWidth,
		Width:               DefaultWidth,
		Height:              DefaultHeight,
		Frames:              DefaultFrames,
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.Overlay(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overlay reads a yaml file on top of c. Keys absent from the file keep
// their current values.
func (c *Config) Overlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// GrowthParams extracts the values the growth engine reads.
func (c *Config) GrowthParams() growth.Params {
	return growth.Params{
		SegmentLength:     c.SegmentLength,
		RepulsionRadius:   c.RepulsionRadius,
		RepulsionStrength: c.RepulsionStrength,
		Randomness:        c.Randomness,
		MaxSegments:       c.MaxSegmentsPerCurve,
	}
}

// Bounds returns the canvas size.
func (c *Config) Bounds() growth.Bounds {
	return growth.Bounds{Width: c.Width, Height: c.Height}
}

// Validate reports the first out-of-range value.
func (c *Config) Validate() error {
	switch {
	case c.NumInitialCurves < 0:
		return fmt.Errorf("%w: num_initial_curves must be >= 0, got %d", ErrInvalidConfig, c.NumInitialCurves)
	case c.SegmentLength <= 0:
		return fmt.Errorf("%w: segment_length must be positive, got %g", ErrInvalidConfig, c.SegmentLength)
	case c.RepulsionRadius <= 0:
		return fmt.Errorf("%w: repulsion_radius must be positive, got %g", ErrInvalidConfig, c.RepulsionRadius)
	case c.RepulsionStrength < 0:
		return fmt.Errorf("%w: repulsion_strength must be >= 0, got %g", ErrInvalidConfig, c.RepulsionStrength)
	case c.Randomness < 0 || c.Randomness > 1:
		return fmt.Errorf("%w: randomness must be in [0, 1], got %g", ErrInvalidConfig, c.Randomness)
	case c.GrowthRate < 0:
		return fmt.Errorf("%w: growth_rate must be >= 0, got %d", ErrInvalidConfig, c.GrowthRate)
	case c.MaxSegmentsPerCurve < 1:
		return fmt.Errorf("%w: max_segments_per_curve must be >= 1, got %d", ErrInvalidConfig, c.MaxSegmentsPerCurve)
	case c.LineThickness <= 0:
		return fmt.Errorf("%w: line_thickness must be positive, got %g", ErrInvalidConfig, c.LineThickness)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: canvas must be positive, got %gx%g", ErrInvalidConfig, c.Width, c.Height)
	case c.Frames < 0:
		return fmt.Errorf("%w: frames must be >= 0, got %d", ErrInvalidConfig, c.Frames)
	}
	if _, err := c.LineColor.RGBA(); err != nil {
		return err
	}
	if _, err := c.BackgroundColor.RGBA(); err != nil {
		return err
	}
	return nil
}

// Clamp coerces numeric fields into their valid ranges and wraps HueShift
// into [0, 360). Malformed colors fall back to the defaults.
func (c *Config) Clamp() {
	c.NumInitialCurves = max(c.NumInitialCurves, 0)
	c.SegmentLength = max(c.SegmentLength, 1)
	c.RepulsionRadius = max(c.RepulsionRadius, 1)
	c.RepulsionStrength = max(c.RepulsionStrength, 0)
	c.Randomness = min(max(c.Randomness, 0), 1)
	c.GrowthRate = max(c.GrowthRate, 0)
	c.MaxSegmentsPerCurve = max(c.MaxSegmentsPerCurve, 1)
	c.LineThickness = max(c.LineThickness, 0.1)
	c.Width = max(c.Width, 50)
	c.Height = max(c.Height, 50)
	c.Frames = max(c.Frames, 0)
	c.HueShift = WrapHue(c.HueShift)
	if _, err := c.LineColor.RGBA(); err != nil {
		c.LineColor = DefaultLineColor
	}
	if _, err := c.BackgroundColor.RGBA(); err != nil {
		c.BackgroundColor = DefaultBackgroundColor
	}
}

// WrapHue maps any angle in degrees into [0, 360).
func WrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}
