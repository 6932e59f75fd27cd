package manage

import "plotgrid.dev/internal/grid"

// Resolution names the plot cell at a location. Plot is nil for an
// unclaimed cell; the id and world still identify it. Unclaimed
// resolutions are transient and never persisted by resolution itself.
type Resolution struct {
	World string
	ID    grid.PlotID
	Plot  *grid.Plot
}

func (r Resolution) Claimed() bool { return r.Plot != nil }

// Resolve maps block coordinates to the plot cell there. ok is false
// when the world carries no plots.
func (m *Manager) Resolve(world string, blockX, blockZ int) (Resolution, bool) {
	w, ok := m.cfg.World(world)
	if !ok {
		return Resolution{}, false
	}
	id := w.PlotIDAt(blockX, blockZ)
	p, found, err := m.store.Get(world, id)
	if err != nil || !found {
		// Store errors resolve like missing records: an unclaimed cell.
		return Resolution{World: world, ID: id}, true
	}
	return Resolution{World: world, ID: id, Plot: p}, true
}

// ResolveAt resolves the plot cell the player is standing in.
func (m *Manager) ResolveAt(playerID string) (Resolution, bool) {
	world := m.host.CurrentWorld(playerID)
	if !m.cfg.IsPlotWorld(world) {
		return Resolution{}, false
	}
	x, z, ok := m.host.CurrentLocation(playerID)
	if !ok {
		return Resolution{}, false
	}
	return m.Resolve(world, x, z)
}

// InPlot reports whether the player stands in a plot-bearing cell.
func (m *Manager) InPlot(playerID string) bool {
	_, ok := m.ResolveAt(playerID)
	return ok
}

// PlotsOf returns the player's plots in a world, never nil.
func (m *Manager) PlotsOf(world, playerID string) []*grid.Plot {
	plots, err := m.store.AllForOwner(world, playerID)
	if err != nil || plots == nil {
		return []*grid.Plot{}
	}
	return plots
}

// PlotCount counts the player's plots that count against the allowance.
func (m *Manager) PlotCount(world, playerID string) int {
	count := 0
	for _, p := range m.PlotsOf(world, playerID) {
		if p.HasOwner() && p.CountsTowardMax {
			count++
		}
	}
	return count
}

// AllowedPlots asks the host for the player's plot quota.
func (m *Manager) AllowedPlots(playerID string) int {
	return m.host.AllowedQuota(playerID, m.cfg.QuotaBaseKey, m.cfg.MaxPlots)
}

// DisplayName resolves a player id to a display name, "unknown" when
// the host has never seen the player.
func (m *Manager) DisplayName(playerID string) string {
	if playerID == "" {
		return "unknown"
	}
	name, ok := m.host.DisplayName(playerID)
	if !ok {
		return "unknown"
	}
	return name
}
