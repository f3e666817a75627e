// Package config loads the player configuration from YAML and merges CLI
// overrides into it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configurable paths, session and render settings.
type Config struct {
	// Paths. Relative paths resolve against BaseDir, which defaults to the
	// directory of the config file.
	BaseDir   string `yaml:"base_dir"`
	Skeleton  string `yaml:"skeleton"`
	Motion    string `yaml:"motion"`
	OutputDir string `yaml:"output_dir"`

	// Session settings
	Scale          float64 `yaml:"scale"`
	MaxSkeletons   int     `yaml:"max_skeletons"`
	FrameIncrement int     `yaml:"frame_increment"`
	RotationBlend  string  `yaml:"rotation_blend"`

	LogLevel string `yaml:"log_level"`

	Render Render `yaml:"render"`
}

// Render holds frame export settings.
type Render struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Supersample   int     `yaml:"supersample"`
	Workers       int     `yaml:"workers"`
	GroundTexture string  `yaml:"ground_texture"`
	ClearColor    string  `yaml:"clear_color"` // "#rrggbb" or "#rrggbbaa"
	Background    *bool   `yaml:"background"`  // ground and triad
	Light         bool    `yaml:"light"`
	BoneRadius    float64 `yaml:"bone_radius"`
}

// ShowBackground reports whether the ground and triad are drawn.
func (r Render) ShowBackground() bool {
	return r.Background == nil || *r.Background
}

// Load reads a YAML config file. Unknown keys are rejected; fields not set
// in the file keep their zero values until Resolve.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = filepath.Dir(path)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Skeleton      string
	Motion        string
	OutputDir     string
	Workers       int
	LogLevel      string
	RotationBlend string
}

// Resolve applies flag overrides, resolves relative paths and fills in
// defaults. CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// flag paths are relative to the working directory, not BaseDir
	if flags.Skeleton != "" {
		c.Skeleton = abs(flags.Skeleton)
	}
	if flags.Motion != "" {
		c.Motion = abs(flags.Motion)
	}
	if flags.OutputDir != "" {
		c.OutputDir = abs(flags.OutputDir)
	}
	if flags.Workers > 0 {
		c.Render.Workers = flags.Workers
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.RotationBlend != "" {
		c.RotationBlend = flags.RotationBlend
	}

	c.Skeleton = c.resolvePath(c.Skeleton)
	c.Motion = c.resolvePath(c.Motion)
	c.Render.GroundTexture = c.resolvePath(c.Render.GroundTexture)
	if c.OutputDir == "" {
		c.OutputDir = "frames"
	}
	c.OutputDir = c.resolvePath(c.OutputDir)

	if c.Scale <= 0 {
		c.Scale = 0.06
	}
	if c.MaxSkeletons <= 0 {
		c.MaxSkeletons = 16
	}
	if c.FrameIncrement <= 0 {
		c.FrameIncrement = 1
	}
	if c.RotationBlend == "" {
		c.RotationBlend = "euler"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	r := &c.Render
	if r.Width <= 0 {
		r.Width = 640
	}
	if r.Height <= 0 {
		r.Height = 480
	}
	if r.Supersample <= 0 {
		r.Supersample = 2
	}
	if r.Workers <= 0 {
		r.Workers = runtime.NumCPU()
	}
	if r.ClearColor == "" {
		r.ClearColor = "#000000"
	}
	if r.BoneRadius <= 0 {
		r.BoneRadius = 0.03
	}
}

func (c *Config) resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

func abs(p string) string {
	if a, err := filepath.Abs(p); err == nil {
		return a
	}
	return p
}

// ParseColor reads "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("config: bad color %q", s)
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("config: bad color %q", s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
