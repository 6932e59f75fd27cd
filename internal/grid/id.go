package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// PlotID addresses one cell in a world's claim grid. Plots form an
// infinite signed grid; the same coordinates in different worlds are
// distinct plots.
type PlotID struct {
	X int
	Y int
}

func (id PlotID) String() string {
	return strconv.Itoa(id.X) + ";" + strconv.Itoa(id.Y)
}

// Less orders ids component-wise, X first.
func (id PlotID) Less(other PlotID) bool {
	if id.X != other.X {
		return id.X < other.X
	}
	return id.Y < other.Y
}

// ParsePlotID parses the "x;y" form produced by String.
func ParsePlotID(s string) (PlotID, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ";", 2)
	if len(parts) != 2 {
		return PlotID{}, fmt.Errorf("plot id %q: want x;y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return PlotID{}, fmt.Errorf("plot id %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return PlotID{}, fmt.Errorf("plot id %q: %w", s, err)
	}
	return PlotID{X: x, Y: y}, nil
}
