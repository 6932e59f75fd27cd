package plotdb

import "plotgrid.dev/internal/grid"

// ClearStart queues an asynchronous clear of one plot. The callback
// fires exactly once when the work finishes, success or not; it never
// fires when the request is rejected. Rejection (false) means the clear
// worker is saturated or the store is closed.
func (s *Store) ClearStart(world string, id grid.PlotID, isDelete bool, done func()) bool {
	if s == nil || s.closed.Load() {
		return false
	}
	select {
	case s.ch <- clearJob{world: world, id: id, isDelete: isDelete, done: done}:
		return true
	default:
		return false
	}
}

func (s *Store) loop() {
	for job := range s.ch {
		s.runClear(job)
	}
}

func (s *Store) runClear(job clearJob) {
	// The callback must fire on every completion path.
	if job.done != nil {
		defer job.done()
	}
	if _, err := s.db.Exec(
		`DELETE FROM plot_access WHERE world = ? AND x = ? AND y = ?`,
		job.world, job.id.X, job.id.Y,
	); err != nil {
		return
	}
	if job.isDelete {
		_, _ = s.db.Exec(
			`DELETE FROM plots WHERE world = ? AND x = ? AND y = ?`,
			job.world, job.id.X, job.id.Y,
		)
		return
	}
	// Plain clear keeps ownership but resets merge state.
	_, _ = s.db.Exec(
		`UPDATE plots SET merged_n = 0, merged_e = 0, merged_s = 0, merged_w = 0, road_removed = 0
		 WHERE world = ? AND x = ? AND y = ?`,
		job.world, job.id.X, job.id.Y,
	)
}
