package grid

import "testing"

func TestSelectionIDs_OrderIndependentAndSized(t *testing.T) {
	a := PlotID{X: -2, Y: 3}
	b := PlotID{X: 1, Y: -1}
	fwd := SelectionIDs("survival", a, b, nil)
	rev := SelectionIDs("survival", b, a, nil)
	want := (1 - (-2) + 1) * (3 - (-1) + 1)
	if len(fwd) != want || len(rev) != want {
		t.Fatalf("expected %d ids, got fwd=%d rev=%d", want, len(fwd), len(rev))
	}
	for i := range fwd {
		if fwd[i] != rev[i] {
			t.Fatalf("corner order changed result at %d: %v vs %v", i, fwd[i], rev[i])
		}
	}
}

func TestSelectionIDs_RowMajor(t *testing.T) {
	ids := SelectionIDs("survival", PlotID{X: 0, Y: 0}, PlotID{X: 1, Y: 1}, nil)
	want := []PlotID{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("at %d: got %v want %v", i, ids[i], want[i])
		}
	}
}

func TestSelectionIDs_SingleCell(t *testing.T) {
	a := PlotID{X: 7, Y: -7}
	ids := SelectionIDs("survival", a, a, nil)
	if len(ids) != 1 || ids[0] != a {
		t.Fatalf("expected [%v], got %v", a, ids)
	}
}

type fakeBounds struct {
	bottom, top PlotID
	member      map[PlotID]bool
}

func (f fakeBounds) GroupBounds(world string, id PlotID) (PlotID, PlotID, bool) {
	if !f.member[id] {
		return PlotID{}, PlotID{}, false
	}
	return f.bottom, f.top, true
}

func TestSelectionIDs_SnapsToMergedGroup(t *testing.T) {
	// Group spans (0,0)..(2,2); selecting any member picks the whole group.
	fb := fakeBounds{
		bottom: PlotID{0, 0},
		top:    PlotID{2, 2},
		member: map[PlotID]bool{{1, 1}: true, {2, 0}: true},
	}
	ids := SelectionIDs("survival", PlotID{1, 1}, PlotID{2, 0}, fb)
	if len(ids) != 9 {
		t.Fatalf("expected the full 3x3 group, got %d ids: %v", len(ids), ids)
	}
	if ids[0] != (PlotID{0, 0}) || ids[len(ids)-1] != (PlotID{2, 2}) {
		t.Fatalf("expected group extremes, got first=%v last=%v", ids[0], ids[len(ids)-1])
	}
}

func TestPlotID_ParseRoundTrip(t *testing.T) {
	id := PlotID{X: -12, Y: 40}
	got, err := ParsePlotID(id.String())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != id {
		t.Fatalf("round trip: got %v want %v", got, id)
	}
	if _, err := ParsePlotID("nope"); err == nil {
		t.Fatalf("expected parse error for malformed id")
	}
}
