package config

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/lifesim/internal/codec"
	"github.com/san-kum/lifesim/internal/grid"
	"github.com/san-kum/lifesim/internal/zoo"
)

const (
	DefaultWidth       = 32
	DefaultHeight      = 16
	DefaultGenerations = 100
	DefaultFPS         = 10
	DefaultTheme       = "retro"
	DefaultDensity     = 0.3
)

type Config struct {
	Width       int             `yaml:"width"`
	Height      int             `yaml:"height"`
	Toroidal    bool            `yaml:"toroidal"`
	Generations int             `yaml:"generations"`
	StopOnCycle bool            `yaml:"stop_on_cycle"`
	Pattern     string          `yaml:"pattern"`
	Input       string          `yaml:"input"`
	Output      string          `yaml:"output"`
	Placement   PlacementConfig `yaml:"placement"`
	Soup        SoupConfig      `yaml:"soup"`
	View        ViewConfig      `yaml:"view"`
}

// PlacementConfig positions a pattern or input grid inside the world.
type PlacementConfig struct {
	X        int `yaml:"x"`
	Y        int `yaml:"y"`
	Rotation int `yaml:"rotation"`
}

type SoupConfig struct {
	Density float64 `yaml:"density"`
	Seed    int64   `yaml:"seed"`
}

type ViewConfig struct {
	FPS   int    `yaml:"fps"`
	Theme string `yaml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Toroidal:    true,
		Generations: DefaultGenerations,
		Pattern:     "glider",
		View: ViewConfig{
			FPS:   DefaultFPS,
			Theme: DefaultTheme,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("negative world size %dx%d", c.Width, c.Height)
	}
	if c.Placement.X < 0 || c.Placement.Y < 0 {
		return fmt.Errorf("placement must be non-negative, got (%d,%d)", c.Placement.X, c.Placement.Y)
	}
	if c.Generations < 0 {
		return fmt.Errorf("generations must be non-negative, got %d", c.Generations)
	}
	if c.Soup.Density < 0 || c.Soup.Density > 1 {
		return fmt.Errorf("soup density must be in [0,1], got %f", c.Soup.Density)
	}
	if c.View.FPS < 0 {
		return fmt.Errorf("fps must be non-negative, got %d", c.View.FPS)
	}
	if c.Output != "" && !codec.IsGridFile(c.Output) {
		return fmt.Errorf("output %s: want a %s or %s file", c.Output, codec.ExtASCII, codec.ExtBinary)
	}
	return nil
}

// Seed returns the initial pattern: the input file if set, else the named
// pattern, else nil (a soup or an empty world).
func (c *Config) Seed() (*grid.Grid, error) {
	var g *grid.Grid
	var err error
	switch {
	case c.Input != "":
		g, err = codec.Load(c.Input)
	case c.Pattern != "":
		g, err = zoo.Lookup(c.Pattern)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return g.Rotate(c.Placement.Rotation), nil
}

// BuildGrid returns the initial world grid described by c. A zero width or
// height takes the seed's size; the seed is merged at the placement offset
// and a soup, when configured, fills the rest.
func (c *Config) BuildGrid() (*grid.Grid, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	seed, err := c.Seed()
	if err != nil {
		return nil, err
	}

	width, height := c.Width, c.Height
	if seed != nil {
		if width == 0 {
			width = seed.Width() + c.Placement.X
		}
		if height == 0 {
			height = seed.Height() + c.Placement.Y
		}
	}

	var g *grid.Grid
	if c.Soup.Density > 0 {
		g = zoo.Soup(width, height, c.Soup.Density, rand.New(rand.NewSource(c.Soup.Seed)))
	} else {
		g = grid.New(width, height)
	}

	if seed != nil {
		if err := g.Merge(seed, c.Placement.X, c.Placement.Y, c.Soup.Density > 0); err != nil {
			return nil, fmt.Errorf("place seed: %w", err)
		}
	}
	return g, nil
}
