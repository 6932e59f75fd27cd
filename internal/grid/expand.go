package grid

// SelectionIDs expands a two-corner rectangular selection into every plot
// id inside the axis-aligned bounding rectangle, inclusive, in row-major
// order (x outer, y inner). Corner order does not matter.
//
// When a corner lies inside an existing merged group, the whole group is
// selected: the first corner snaps to that group's bottom member and the
// second to its top member before the rectangle is normalized. Pass a nil
// bounds to skip group snapping.
func SelectionIDs(world string, a, b PlotID, bounds GroupBounds) []PlotID {
	if bounds != nil {
		if bottom, _, ok := bounds.GroupBounds(world, a); ok {
			a = bottom
		}
		if _, top, ok := bounds.GroupBounds(world, b); ok {
			b = top
		}
	}
	minX, maxX := a.X, b.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := a.Y, b.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	ids := make([]PlotID, 0, (maxX-minX+1)*(maxY-minY+1))
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			ids = append(ids, PlotID{X: x, Y: y})
		}
	}
	return ids
}
