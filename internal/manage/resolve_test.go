package manage

import (
	"testing"

	"plotgrid.dev/internal/grid"
)

func TestResolve_UnregisteredWorldNotApplicable(t *testing.T) {
	fx := newFixture(t, nil)
	if _, ok := fx.mgr.Resolve("nether", 0, 0); ok {
		t.Fatalf("nether carries no plots")
	}
}

func TestResolve_UnclaimedCell(t *testing.T) {
	fx := newFixture(t, nil)
	res, ok := fx.mgr.Resolve("survival", 0, 0)
	if !ok {
		t.Fatalf("survival is a plot world")
	}
	if res.Claimed() {
		t.Fatalf("no record: resolution must be unclaimed")
	}
	if res.World != "survival" || res.ID != (grid.PlotID{X: 0, Y: 0}) {
		t.Fatalf("unclaimed resolution still names the cell: %+v", res)
	}
	if len(fx.store.plots["survival"]) != 0 {
		t.Fatalf("resolution must not persist placeholders")
	}
}

func TestResolve_ExistingRecordShared(t *testing.T) {
	fx := newFixture(t, nil)
	p := &grid.Plot{ID: grid.PlotID{X: 0, Y: 0}, Owner: "p1", CountsTowardMax: true}
	fx.store.put("survival", p)
	res, ok := fx.mgr.Resolve("survival", 5, 5)
	if !ok || !res.Claimed() {
		t.Fatalf("expected claimed resolution, got ok=%v %+v", ok, res)
	}
	if res.Plot != p {
		t.Fatalf("resolution returns the store's record, not a copy")
	}
}

func TestResolveAt_UsesHostWorldAndLocation(t *testing.T) {
	fx := newFixture(t, nil)
	// span = 32 + 7 = 39; block 40 is in plot 1.
	fx.host.x, fx.host.z = 40, -1
	res, ok := fx.mgr.ResolveAt("p1")
	if !ok {
		t.Fatalf("expected resolution")
	}
	if res.ID != (grid.PlotID{X: 1, Y: -1}) {
		t.Fatalf("got %v want {1 -1}", res.ID)
	}
	if !fx.mgr.InPlot("p1") {
		t.Fatalf("player stands in a plot cell")
	}

	fx.host.world = "nether"
	if fx.mgr.InPlot("p1") {
		t.Fatalf("no plots outside registered worlds")
	}
	fx.host.world = "survival"
	fx.host.hasLoc = false
	if _, ok := fx.mgr.ResolveAt("p1"); ok {
		t.Fatalf("missing location resolves to nothing")
	}
}

func TestPlotCountAndQuota(t *testing.T) {
	fx := newFixture(t, nil)
	fx.store.put("survival", &grid.Plot{ID: grid.PlotID{X: 0, Y: 0}, Owner: "p1", CountsTowardMax: true})
	fx.store.put("survival", &grid.Plot{ID: grid.PlotID{X: 1, Y: 0}, Owner: "p1", CountsTowardMax: false})
	fx.store.put("survival", &grid.Plot{ID: grid.PlotID{X: 2, Y: 0}, Owner: "p2", CountsTowardMax: true})

	if got := len(fx.mgr.PlotsOf("survival", "p1")); got != 2 {
		t.Fatalf("PlotsOf: got %d want 2", got)
	}
	if got := fx.mgr.PlotCount("survival", "p1"); got != 1 {
		t.Fatalf("PlotCount: got %d want 1", got)
	}
	if got := len(fx.mgr.PlotsOf("survival", "nobody")); got != 0 {
		t.Fatalf("PlotsOf must be empty, never nil: got %d", got)
	}
	if got := fx.mgr.AllowedPlots("p1"); got != 5 {
		t.Fatalf("AllowedPlots default: got %d want 5", got)
	}
	fx.host.quota = 9
	if got := fx.mgr.AllowedPlots("p1"); got != 9 {
		t.Fatalf("AllowedPlots from host: got %d want 9", got)
	}
}

func TestDisplayName_UnknownFallback(t *testing.T) {
	fx := newFixture(t, nil)
	fx.host.names["p1"] = "Steve"
	if got := fx.mgr.DisplayName("p1"); got != "Steve" {
		t.Fatalf("got %q", got)
	}
	if got := fx.mgr.DisplayName("p2"); got != "unknown" {
		t.Fatalf("never-seen player: got %q", got)
	}
	if got := fx.mgr.DisplayName(""); got != "unknown" {
		t.Fatalf("empty id: got %q", got)
	}
}

func TestSelectionIDs_UsesStoreGroupBounds(t *testing.T) {
	fx := newFixture(t, nil)
	fx.store.bounds = map[grid.PlotID][2]grid.PlotID{
		{X: 1, Y: 1}: {{X: 0, Y: 0}, {X: 1, Y: 1}},
	}
	ids := fx.mgr.SelectionIDs("survival", grid.PlotID{X: 1, Y: 1}, grid.PlotID{X: 2, Y: 2})
	// Corner snaps to the group bottom (0,0): 3x3 selection.
	if len(ids) != 9 {
		t.Fatalf("expected 9 ids, got %d: %v", len(ids), ids)
	}
}
