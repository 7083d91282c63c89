// Package render turns a curve collection into drawable frames and encodes
// them as SVG, PNG or JSON.
package render

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/reflow/internal/config"
	"github.com/san-kum/reflow/internal/growth"
)

const (
	// DynamicSaturation and DynamicValue fix the S and B channels of
	// dynamic strokes.
	DynamicSaturation = 0.8
	DynamicValue      = 0.9
)

var ErrEmptyCanvas = errors.New("render: canvas has no area")

// Path is one curve ready to stroke.
type Path struct {
	Points []growth.Vec
	Stroke color.RGBA
	Active bool
}

// Frame is everything a renderer needs to draw one frame.
type Frame struct {
	Width, Height float64
	Background    color.RGBA
	Thickness     float64
	Paths         []Path
}

// NewFrame resolves colors and polylines for curves under cfg.
func NewFrame(curves []growth.Curve, cfg *config.Config, bounds growth.Bounds) (*Frame, error) {
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return nil, fmt.Errorf("%w: %gx%g", ErrEmptyCanvas, bounds.Width, bounds.Height)
	}
	bg, err := cfg.BackgroundColor.RGBA()
	if err != nil {
		return nil, err
	}

	f := &Frame{
		Width:      bounds.Width,
		Height:     bounds.Height,
		Background: bg,
		Thickness:  cfg.LineThickness,
		Paths:      make([]Path, 0, len(curves)),
	}
	for i := range curves {
		stroke, err := ResolveStroke(curves[i].Hue, cfg)
		if err != nil {
			return nil, err
		}
		f.Paths = append(f.Paths, Path{
			Points: curves[i].Points(),
			Stroke: stroke,
			Active: curves[i].Active,
		})
	}
	return f, nil
}

// ResolveStroke picks the stroke color of a curve: HSB((hue + HueShift) mod
// 360, 80%, 90%) in dynamic mode, LineColor otherwise.
func ResolveStroke(hue float64, cfg *config.Config) (color.RGBA, error) {
	if !cfg.DynamicColor {
		return cfg.LineColor.RGBA()
	}
	return HueColor(hue + cfg.HueShift), nil
}

// HueColor returns the dynamic-mode color for a hue in degrees.
func HueColor(hue float64) color.RGBA {
	c := colorful.Hsv(config.WrapHue(hue), DynamicSaturation, DynamicValue)
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
