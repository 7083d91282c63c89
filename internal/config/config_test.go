package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.NumInitialCurves != 3 {
		t.Errorf("expected 3 initial curves, got %d", cfg.NumInitialCurves)
	}
	if cfg.SegmentLength != 20 || cfg.RepulsionRadius != 70 {
		t.Errorf("unexpected geometry defaults: %+v", cfg)
	}
	if cfg.GrowthRate != 3 || cfg.MaxSegmentsPerCurve != 300 {
		t.Errorf("unexpected growth defaults: %+v", cfg)
	}
	if cfg.Freeze || !cfg.DynamicColor {
		t.Error("expected freeze off and dynamic color on")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reflow.yaml")
	cfg := DefaultConfig()
	cfg.Randomness = 0.25
	cfg.LineColor = "#112233"
	cfg.Seed = 99

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := writeFile(path, "growth_rate: 7\n"); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.GrowthRate != 7 {
		t.Errorf("expected growth_rate 7, got %d", cfg.GrowthRate)
	}
	if cfg.SegmentLength != DefaultSegmentLength {
		t.Errorf("missing keys should keep defaults, got segment_length %g", cfg.SegmentLength)
	}
}

func TestOverlayKeepsPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := writeFile(path, "randomness: 0.3\n"); err != nil {
		t.Fatal(err)
	}

	cfg := GetPreset("dense")
	if err := cfg.Overlay(path); err != nil {
		t.Fatalf("overlay failed: %v", err)
	}
	if cfg.Randomness != 0.3 {
		t.Errorf("expected randomness 0.3, got %g", cfg.Randomness)
	}
	if cfg.NumInitialCurves != 12 {
		t.Errorf("preset value lost: num_initial_curves %d", cfg.NumInitialCurves)
	}
}

func TestOverlayMissingFile(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Overlay(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative radius", func(c *Config) { c.RepulsionRadius = -1 }},
		{"zero segment length", func(c *Config) { c.SegmentLength = 0 }},
		{"randomness above one", func(c *Config) { c.Randomness = 1.5 }},
		{"zero max segments", func(c *Config) { c.MaxSegmentsPerCurve = 0 }},
		{"negative curves", func(c *Config) { c.NumInitialCurves = -2 }},
		{"empty canvas", func(c *Config) { c.Width = 0 }},
		{"bad color", func(c *Config) { c.LineColor = "green" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RepulsionRadius = -10
	cfg.Randomness = 3
	cfg.HueShift = -90
	cfg.BackgroundColor = "nope"

	cfg.Clamp()

	if err := cfg.Validate(); err != nil {
		t.Errorf("clamped config should validate: %v", err)
	}
	if cfg.Randomness != 1 {
		t.Errorf("expected randomness 1, got %g", cfg.Randomness)
	}
	if cfg.HueShift != 270 {
		t.Errorf("expected hue shift 270, got %g", cfg.HueShift)
	}
	if cfg.BackgroundColor != DefaultBackgroundColor {
		t.Errorf("expected default background, got %s", cfg.BackgroundColor)
	}
}

func TestColorRGBA(t *testing.T) {
	got, err := DefaultLineColor.RGBA()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := color.RGBA{R: 0x4c, G: 0x61, B: 0x21, A: 0xff}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestWrapHue(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{180, 180},
		{360, 0},
		{540, 180},
		{-30, 330},
	}
	for _, tt := range tests {
		if got := WrapHue(tt.in); got != tt.want {
			t.Errorf("WrapHue(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}

func TestGrowthParams(t *testing.T) {
	cfg := DefaultConfig()
	p := cfg.GrowthParams()
	if p.SegmentLength != cfg.SegmentLength || p.MaxSegments != cfg.MaxSegmentsPerCurve {
		t.Errorf("params do not mirror config: %+v", p)
	}
	b := cfg.Bounds()
	if b.Width != cfg.Width || b.Height != cfg.Height {
		t.Errorf("bounds do not mirror config: %+v", b)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("dense")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.NumInitialCurves != 12 {
		t.Errorf("expected 12 curves, got %d", cfg.NumInitialCurves)
	}
	if cfg.BackgroundColor != DefaultBackgroundColor {
		t.Error("preset should inherit unset defaults")
	}

	cfg.NumInitialCurves = 1
	if GetPreset("dense").NumInitialCurves != 12 {
		t.Error("presets must not share state between calls")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if _, err := LookupPreset("nonexistent"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
