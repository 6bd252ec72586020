package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/neural-mesh/internal/mesh"
)

const (
	WindowWidth  = 1280
	WindowHeight = 720

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 40
	ButtonX      = 20
	ButtonY      = 50

	// Mesh defaults
	LowCount             = 50
	HighCount            = 100
	WidthThreshold       = 900
	SpeedBand            = 0.25
	PointerRadius        = 150
	MeshThreshold        = 100
	MeshOpacity          = 0.15
	PointerEdgeThreshold = 150
	PointerEdgeOpacity   = 0.4

	// Page collaborators
	CurtainDelayMs = 800
	OutlineEaseMs  = 500
)

// Config mirrors mesh.Params in a JSON friendly shape.
type Config struct {
	Preset string `json:"preset,omitempty"`
	Motion string `json:"motion"` // "drift" or "anchored"

	LowCount       int     `json:"low_count"`
	HighCount      int     `json:"high_count"`
	WidthThreshold float64 `json:"width_threshold"`

	SpeedBand  float64   `json:"speed_band"`
	SizeMin    float64   `json:"size_min"`
	SizeMax    float64   `json:"size_max"`
	DensityMin float64   `json:"density_min"`
	DensityMax float64   `json:"density_max"`
	Palette    [2]string `json:"palette"`

	PointerRadius float64 `json:"pointer_radius"`
	Repulsion     float64 `json:"repulsion"`
	AnchorReturn  float64 `json:"anchor_return"`

	Glow      bool    `json:"glow"`
	GlowDecay float64 `json:"glow_decay"`
	GlowScale float64 `json:"glow_scale"`
	GlowBlur  float64 `json:"glow_blur"`
	GlowColor string  `json:"glow_color"`

	MeshThreshold        float64 `json:"mesh_threshold"`
	MeshOpacity          float64 `json:"mesh_opacity"`
	MeshBoost            float64 `json:"mesh_boost"`
	MeshColor            string  `json:"mesh_color"`
	PointerEdgeThreshold float64 `json:"pointer_edge_threshold"`
	PointerEdgeOpacity   float64 `json:"pointer_edge_opacity"`
	PointerEdgeColor     string  `json:"pointer_edge_color"`
	LineWidth            float64 `json:"line_width"`

	Background string `json:"background"`
}

// NewDefault returns the drifting mesh.
func NewDefault() *Config {
	return &Config{
		Preset:               "drift",
		Motion:               mesh.MotionDrift.String(),
		LowCount:             LowCount,
		HighCount:            HighCount,
		WidthThreshold:       WidthThreshold,
		SpeedBand:            SpeedBand,
		SizeMin:              0.5,
		SizeMax:              2.5,
		DensityMin:           1,
		DensityMax:           4,
		Palette:              [2]string{"#5D5FEF", "#00F0FF"},
		PointerRadius:        PointerRadius,
		Repulsion:            1,
		AnchorReturn:         0.1,
		GlowDecay:            0.05,
		GlowScale:            1,
		GlowBlur:             0,
		GlowColor:            "#FFFFFF",
		MeshThreshold:        MeshThreshold,
		MeshOpacity:          MeshOpacity,
		MeshBoost:            2,
		MeshColor:            "#5D5FEF",
		PointerEdgeThreshold: PointerEdgeThreshold,
		PointerEdgeOpacity:   PointerEdgeOpacity,
		PointerEdgeColor:     "#00F0FF",
		LineWidth:            1,
		Background:           "#05060F",
	}
}

var presets = map[string]func() *Config{
	"drift": NewDefault,
	// Anchored particles that flee the pointer and settle back home.
	"elegant": func() *Config {
		c := NewDefault()
		c.Preset = "elegant"
		c.Motion = mesh.MotionAnchored.String()
		c.SpeedBand = 0
		c.SizeMin = 0.1
		c.SizeMax = 2
		c.DensityMin = 1
		c.DensityMax = 31
		c.LowCount = 100
		c.MeshBoost = 1
		c.PointerEdgeOpacity = 0
		c.PointerEdgeThreshold = 1
		return c
	},
	"glow": func() *Config {
		c := NewDefault()
		c.Preset = "glow"
		c.HighCount = 110
		c.Glow = true
		c.GlowDecay = 0.02
		c.GlowScale = 2.5
		c.GlowBlur = 10
		c.PointerEdgeThreshold = 250
		c.PointerEdgeOpacity = 0.5
		c.MeshOpacity = 0.25
		return c
	},
}

// Presets lists the preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns a fresh copy of the named preset.
func Preset(name string) (*Config, error) {
	mk, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (have %v)", name, Presets())
	}
	return mk(), nil
}

// Load reads a config file over the defaults of its preset. A missing file
// yields the default config.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewDefault(), nil
		}
		return nil, err
	}

	var probe struct {
		Preset string `json:"preset"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	cfg := NewDefault()
	if probe.Preset != "" {
		if cfg, err = Preset(probe.Preset); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// Resolve returns the config from filename, or the named preset when
// filename is empty, together with its validated mesh parameters.
func Resolve(filename, preset string) (*Config, mesh.Params, error) {
	var (
		cfg *Config
		err error
	)
	if filename != "" {
		cfg, err = Load(filename)
	} else {
		cfg, err = Preset(preset)
	}
	if err != nil {
		return nil, mesh.Params{}, err
	}
	p, err := cfg.Params()
	if err != nil {
		return nil, mesh.Params{}, fmt.Errorf("preset %s: %w", cfg.Preset, err)
	}
	if err := p.Validate(); err != nil {
		return nil, mesh.Params{}, fmt.Errorf("preset %s: %w", cfg.Preset, err)
	}
	return cfg, p, nil
}

// Save writes cfg as indented JSON.
func Save(cfg *Config, filename string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, append(data, '\n'), 0o644)
}

// Validate checks that the config converts to valid mesh parameters.
func (c *Config) Validate() error {
	p, err := c.Params()
	if err != nil {
		return err
	}
	return p.Validate()
}

// Params converts the config into simulation parameters.
func (c *Config) Params() (mesh.Params, error) {
	var p mesh.Params

	switch c.Motion {
	case "", mesh.MotionDrift.String():
		p.Motion = mesh.MotionDrift
	case mesh.MotionAnchored.String():
		p.Motion = mesh.MotionAnchored
	default:
		return p, fmt.Errorf("unknown motion %q", c.Motion)
	}

	colors := []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"palette[0]", c.Palette[0], &p.Palette[0]},
		{"palette[1]", c.Palette[1], &p.Palette[1]},
		{"glow_color", c.GlowColor, &p.GlowColor},
		{"mesh_color", c.MeshColor, &p.MeshColor},
		{"pointer_edge_color", c.PointerEdgeColor, &p.PointerEdgeColor},
	}
	for _, col := range colors {
		v, err := colorful.Hex(col.hex)
		if err != nil {
			return p, fmt.Errorf("%s: %w", col.name, err)
		}
		*col.dst = v
	}

	p.LowCount = c.LowCount
	p.HighCount = c.HighCount
	p.WidthThreshold = c.WidthThreshold
	p.SpeedBand = c.SpeedBand
	p.SizeMin = c.SizeMin
	p.SizeMax = c.SizeMax
	p.DensityMin = c.DensityMin
	p.DensityMax = c.DensityMax
	p.PointerRadius = c.PointerRadius
	p.Repulsion = c.Repulsion
	p.AnchorReturn = c.AnchorReturn
	p.GlowEnabled = c.Glow
	p.GlowDecay = c.GlowDecay
	p.GlowScale = c.GlowScale
	p.GlowBlur = c.GlowBlur
	p.MeshThreshold = c.MeshThreshold
	p.MeshOpacity = c.MeshOpacity
	p.MeshBoost = c.MeshBoost
	p.PointerEdgeThreshold = c.PointerEdgeThreshold
	p.PointerEdgeOpacity = c.PointerEdgeOpacity
	p.LineWidth = c.LineWidth
	return p, nil
}

// BackgroundColor parses the background hex color, falling back to black.
func (c *Config) BackgroundColor() colorful.Color {
	bg, err := colorful.Hex(c.Background)
	if err != nil {
		return colorful.Color{}
	}
	return bg
}
