package config

import (
	"fmt"
	"sort"
)

// Presets are named starting points. Each is applied on top of
// DefaultConfig, so a preset only lists what it changes.
var Presets = map[string]func(*Config){
	"default": func(c *Config) {},
	"dense": func(c *Config) {
		c.NumInitialCurves = 12
		c.SegmentLength = 10
		c.RepulsionRadius = 40
		c.RepulsionStrength = 0.15
		c.MaxSegmentsPerCurve = 500
	},
	"sparse": func(c *Config) {
		c.NumInitialCurves = 2
		c.SegmentLength = 25
		c.RepulsionRadius = 120
		c.GrowthRate = 2
	},
	"wild": func(c *Config) {
		c.NumInitialCurves = 6
		c.Randomness = 1
		c.RepulsionStrength = 0.3
		c.GrowthRate = 5
	},
	"calm": func(c *Config) {
		c.NumInitialCurves = 4
		c.Randomness = 0.15
		c.RepulsionStrength = 0.05
		c.DynamicColor = false
		c.LineThickness = 2
	},
}

// GetPreset returns a fresh Config for the named preset, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// LookupPreset is GetPreset returning ErrUnknownPreset for unknown names.
func LookupPreset(name string) (*Config, error) {
	cfg := GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
