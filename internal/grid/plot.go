package grid

// Merge link directions, matching the neighbor order N, E, S, W.
const (
	North = iota
	East
	South
	West
)

// Plot is one claimed cell. Unclaimed cells have no Plot record at all;
// resolution reports them by id only.
type Plot struct {
	ID    PlotID
	World string

	// Owner is the opaque host player id. Empty means the record exists
	// but has no owner (e.g. an admin-reserved cell).
	Owner string

	Trusted map[string]struct{}
	Denied  map[string]struct{}

	// Merged marks which adjacent plots belong to the same merged group,
	// indexed by North/East/South/West.
	Merged [4]bool

	CountsTowardMax bool
}

func (p *Plot) HasOwner() bool {
	return p != nil && p.Owner != ""
}

// GroupBounds reports the bottom (min x,y) and top (max x,y) member ids
// of the merged group containing a given plot. Implementations return
// ok=false when the plot is unknown or unowned, in which case the id is
// used as-is.
type GroupBounds interface {
	GroupBounds(world string, id PlotID) (bottom, top PlotID, ok bool)
}
