package worldcfg

import (
	"os"
	"path/filepath"
	"testing"

	"plotgrid.dev/internal/grid"
)

func TestLoad_WorldsYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "worlds.yaml")
	data := `
default_world: survival
max_plots: 10
worlds:
  - name: survival
    use_economy: true
    merge_price: 10
    plot_size: 32
    road_width: 7
  - name: creative
    use_economy: false
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write worlds.yaml: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load worlds.yaml: %v", err)
	}
	if !cfg.IsPlotWorld("survival") || !cfg.IsPlotWorld("creative") {
		t.Fatalf("expected both worlds registered")
	}
	if cfg.IsPlotWorld("nether") {
		t.Fatalf("unlisted world should not be a plot world")
	}
	creative, _ := cfg.World("creative")
	if creative.PlotSize != 32 {
		t.Fatalf("normalize should default plot_size, got %d", creative.PlotSize)
	}
	if cfg.MaxPlots != 10 {
		t.Fatalf("max_plots: got %d want 10", cfg.MaxPlots)
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if !cfg.IsPlotWorld("survival") {
		t.Fatalf("defaults should register the survival world")
	}
	if cfg.QuotaBaseKey != "plots.plot" {
		t.Fatalf("quota base key default: got %q", cfg.QuotaBaseKey)
	}
}

func TestValidate_RejectsDuplicateWorlds(t *testing.T) {
	cfg := Config{Worlds: []WorldSpec{{Name: "a"}, {Name: "a"}}}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected duplicate world rejected")
	}
}

func TestPlotIDAt_FloorsNegativeCoordinates(t *testing.T) {
	w := WorldSpec{PlotSize: 32, RoadWidth: 7}
	// span 39: block 0 -> plot 0, block -1 -> plot -1, block 39 -> plot 1.
	cases := []struct {
		x, z int
		want grid.PlotID
	}{
		{0, 0, grid.PlotID{X: 0, Y: 0}},
		{38, 38, grid.PlotID{X: 0, Y: 0}},
		{39, 0, grid.PlotID{X: 1, Y: 0}},
		{-1, -1, grid.PlotID{X: -1, Y: -1}},
		{-39, 5, grid.PlotID{X: -1, Y: 0}},
		{-40, 5, grid.PlotID{X: -2, Y: 0}},
	}
	for _, c := range cases {
		if got := w.PlotIDAt(c.x, c.z); got != c.want {
			t.Fatalf("PlotIDAt(%d,%d): got %v want %v", c.x, c.z, got, c.want)
		}
	}
}
