package worldcfg

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"plotgrid.dev/internal/grid"
)

// Config holds per-world plot settings. Worlds not listed here do not
// carry plots at all.
type Config struct {
	DefaultWorld string      `yaml:"default_world"`
	MaxPlots     int         `yaml:"max_plots"`
	QuotaBaseKey string      `yaml:"quota_base_key"`
	Worlds       []WorldSpec `yaml:"worlds"`
}

type WorldSpec struct {
	Name       string  `yaml:"name"`
	UseEconomy bool    `yaml:"use_economy"`
	MergePrice float64 `yaml:"merge_price"`
	PlotSize   int     `yaml:"plot_size"`
	RoadWidth  int     `yaml:"road_width"`
}

func Load(path string) (Config, error) {
	cfg := defaults()
	if strings.TrimSpace(path) == "" {
		cfg.Normalize()
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("worlds.yaml: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("worlds.yaml: %w", err)
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		DefaultWorld: "survival",
		MaxPlots:     127,
		QuotaBaseKey: "plots.plot",
		Worlds: []WorldSpec{
			{
				Name:       "survival",
				UseEconomy: true,
				MergePrice: 10,
				PlotSize:   32,
				RoadWidth:  7,
			},
		},
	}
}

func (c *Config) Normalize() {
	if c == nil {
		return
	}
	if strings.TrimSpace(c.QuotaBaseKey) == "" {
		c.QuotaBaseKey = "plots.plot"
	}
	if c.MaxPlots <= 0 {
		c.MaxPlots = 127
	}
	for i := range c.Worlds {
		w := &c.Worlds[i]
		w.Name = strings.TrimSpace(w.Name)
		if w.PlotSize <= 0 {
			w.PlotSize = 32
		}
		if w.RoadWidth < 0 {
			w.RoadWidth = 0
		}
		if w.MergePrice < 0 {
			w.MergePrice = 0
		}
	}
	if strings.TrimSpace(c.DefaultWorld) == "" && len(c.Worlds) > 0 {
		c.DefaultWorld = c.Worlds[0].Name
	}
}

func (c *Config) Validate() error {
	seen := map[string]struct{}{}
	for _, w := range c.Worlds {
		if w.Name == "" {
			return fmt.Errorf("world with empty name")
		}
		if _, dup := seen[w.Name]; dup {
			return fmt.Errorf("duplicate world %q", w.Name)
		}
		seen[w.Name] = struct{}{}
	}
	return nil
}

// World returns the settings for a registered plot world.
func (c *Config) World(name string) (WorldSpec, bool) {
	for _, w := range c.Worlds {
		if w.Name == name {
			return w, true
		}
	}
	return WorldSpec{}, false
}

// IsPlotWorld reports whether plots exist in the named world.
func (c *Config) IsPlotWorld(name string) bool {
	_, ok := c.World(name)
	return ok
}

// PlotIDAt maps block coordinates to the containing plot id. Roads
// between plots belong to the lower-indexed cell's far edge; a location
// on a road still maps to a plot id, claim rules for roads live outside
// this package.
func (w WorldSpec) PlotIDAt(blockX, blockZ int) grid.PlotID {
	span := w.PlotSize + w.RoadWidth
	return grid.PlotID{X: floorDiv(blockX, span), Y: floorDiv(blockZ, span)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
