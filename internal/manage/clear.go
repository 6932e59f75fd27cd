package manage

import (
	"strconv"
	"time"

	"plotgrid.dev/internal/captions"
	"plotgrid.dev/internal/grid"
	"plotgrid.dev/internal/persistence/journal"
)

// ClearRequest asks for one plot's contents (and, for deletes, its
// ownership) to be removed. An empty Requester means server-initiated.
type ClearRequest struct {
	Requester string
	World     string
	PlotID    grid.PlotID
	IsDelete  bool
}

// Clear starts an asynchronous clear. At most one clear runs per plot;
// a concurrent request is rejected with ErrBusy and a wait caption, and
// is not queued. The completion caption carries elapsed milliseconds
// and is delivered only when the requester is still online; otherwise
// it is dropped without logging.
func (m *Manager) Clear(req ClearRequest) error {
	key := clearKey{world: req.World, id: req.PlotID}

	m.mu.Lock()
	if _, busy := m.clearing[key]; busy {
		m.mu.Unlock()
		m.notifier.Caption(req.Requester, captions.WaitForTimer)
		return ErrBusy
	}
	m.clearing[key] = struct{}{}
	m.mu.Unlock()

	start := m.now()
	requester := req.Requester
	accepted := m.store.ClearStart(req.World, req.PlotID, req.IsDelete, func() {
		// Release the in-flight marker on every completion path.
		m.mu.Lock()
		delete(m.clearing, key)
		m.mu.Unlock()

		if requester == "" || !m.host.IsOnline(requester) {
			return
		}
		elapsed := m.now().Sub(start).Milliseconds()
		m.notifier.Caption(requester, captions.ClearingDone, strconv.FormatInt(elapsed, 10))
	})
	if !accepted {
		m.mu.Lock()
		delete(m.clearing, key)
		m.mu.Unlock()
		m.notifier.Caption(requester, captions.WaitForTimer)
		return ErrBusy
	}

	kind := journal.KindClear
	if req.IsDelete {
		kind = journal.KindDelete
	}
	m.auditEntry(journal.Entry{
		At:    start.UTC().Format(time.RFC3339Nano),
		Kind:  kind,
		World: req.World,
		Plot:  req.PlotID.String(),
		Actor: requester,
	})
	return nil
}

// Clearing reports whether a clear is currently running on the plot.
func (m *Manager) Clearing(world string, id grid.PlotID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, busy := m.clearing[clearKey{world: world, id: id}]
	return busy
}
