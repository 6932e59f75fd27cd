package plotdb

import (
	"database/sql"
	"fmt"

	"plotgrid.dev/internal/grid"
)

// Neighbor offsets in grid.North/East/South/West order.
var neighborOffsets = [4]grid.PlotID{
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
}

// GroupBounds walks merged links from id and reports the min and max
// member ids of its merged group. ok is false for unknown or unowned
// plots. Implements grid.GroupBounds.
func (s *Store) GroupBounds(world string, id grid.PlotID) (grid.PlotID, grid.PlotID, bool) {
	start, found, err := s.Get(world, id)
	if err != nil || !found || !start.HasOwner() {
		return grid.PlotID{}, grid.PlotID{}, false
	}
	bottom, top := id, id
	seen := map[grid.PlotID]bool{id: true}
	queue := []*grid.Plot{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for dir, off := range neighborOffsets {
			if !cur.Merged[dir] {
				continue
			}
			next := grid.PlotID{X: cur.ID.X + off.X, Y: cur.ID.Y + off.Y}
			if seen[next] {
				continue
			}
			seen[next] = true
			p, ok, err := s.Get(world, next)
			if err != nil || !ok {
				continue
			}
			if next.X < bottom.X {
				bottom.X = next.X
			}
			if next.Y < bottom.Y {
				bottom.Y = next.Y
			}
			if next.X > top.X {
				top.X = next.X
			}
			if next.Y > top.Y {
				top.Y = next.Y
			}
			queue = append(queue, p)
		}
	}
	return bottom, top, true
}

// MergeCommit joins every listed plot into one group in a single
// transaction. All plots must already exist and the bottom plot must
// have an owner; the group takes that owner. removeRoads drops the
// road strips between adjacent members.
func (s *Store) MergeCommit(world string, ids []grid.PlotID, removeRoads bool) error {
	if len(ids) == 0 {
		return fmt.Errorf("empty merge set")
	}
	member := make(map[grid.PlotID]bool, len(ids))
	bottom := ids[0]
	for _, id := range ids {
		member[id] = true
		if id.Less(bottom) {
			bottom = id
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	owner, err := plotOwnerTx(tx, world, bottom)
	if err != nil {
		return err
	}
	if owner == "" {
		return fmt.Errorf("merge %s/%s: bottom plot has no owner", world, bottom)
	}

	road := 0
	if removeRoads {
		road = 1
	}
	for _, id := range ids {
		if _, err := plotOwnerTx(tx, world, id); err != nil {
			return err
		}
		links := [4]int{}
		for dir, off := range neighborOffsets {
			if member[grid.PlotID{X: id.X + off.X, Y: id.Y + off.Y}] {
				links[dir] = 1
			}
		}
		if _, err := tx.Exec(
			`UPDATE plots SET owner = ?, merged_n = ?, merged_e = ?, merged_s = ?, merged_w = ?, road_removed = ?
			 WHERE world = ? AND x = ? AND y = ?`,
			owner, links[grid.North], links[grid.East], links[grid.South], links[grid.West], road,
			world, id.X, id.Y,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func plotOwnerTx(tx *sql.Tx, world string, id grid.PlotID) (string, error) {
	var owner string
	err := tx.QueryRow(
		`SELECT owner FROM plots WHERE world = ? AND x = ? AND y = ?`,
		world, id.X, id.Y,
	).Scan(&owner)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("merge %s/%s: plot not claimed", world, id)
	}
	if err != nil {
		return "", err
	}
	return owner, nil
}
