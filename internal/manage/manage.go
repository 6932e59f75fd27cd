package manage

import (
	"sync"
	"time"

	"plotgrid.dev/internal/grid"
	"plotgrid.dev/internal/notify"
	"plotgrid.dev/internal/persistence/journal"
	"plotgrid.dev/internal/worldcfg"
)

// Host exposes the game-server runtime this core adapts to.
type Host interface {
	CurrentWorld(playerID string) string
	CurrentLocation(playerID string) (blockX, blockZ int, ok bool)
	IsOnline(playerID string) bool
	AllowedQuota(playerID, baseKey string, defaultMax int) int
	DisplayName(playerID string) (string, bool)
}

// Ledger is the currency collaborator. Balance is advisory; Withdraw
// still fails when funds ran out in between.
type Ledger interface {
	Balance(playerID string) float64
	Withdraw(playerID string, amount float64) error
}

// Store is the persistent plot collaborator.
type Store interface {
	Get(world string, id grid.PlotID) (*grid.Plot, bool, error)
	AllForWorld(world string) (map[grid.PlotID]*grid.Plot, error)
	AllForOwner(world, player string) ([]*grid.Plot, error)
	GroupBounds(world string, id grid.PlotID) (bottom, top grid.PlotID, ok bool)
	MergeCommit(world string, ids []grid.PlotID, removeRoads bool) error
	ClearStart(world string, id grid.PlotID, isDelete bool, done func()) bool
}

// Auditor records plot operations. Optional.
type Auditor interface {
	WriteEntry(e journal.Entry) error
}

type clearKey struct {
	world string
	id    grid.PlotID
}

// Manager orchestrates plot merges and clears against the host, ledger
// and store collaborators.
type Manager struct {
	cfg      *worldcfg.Config
	store    Store
	ledger   Ledger
	host     Host
	notifier *notify.Notifier
	audit    Auditor

	now func() time.Time

	mu       sync.Mutex
	clearing map[clearKey]struct{}
}

// Options carries the optional collaborators. A nil Ledger disables all
// costs; a nil Auditor disables operation journaling.
type Options struct {
	Ledger  Ledger
	Auditor Auditor
	Now     func() time.Time
}

func New(cfg *worldcfg.Config, store Store, host Host, notifier *notify.Notifier, opts Options) *Manager {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		cfg:      cfg,
		store:    store,
		ledger:   opts.Ledger,
		host:     host,
		notifier: notifier,
		audit:    opts.Auditor,
		now:      now,
		clearing: map[clearKey]struct{}{},
	}
}

// SelectionIDs expands a two-corner selection, snapping corners that lie
// in already-merged groups to the whole group.
func (m *Manager) SelectionIDs(world string, a, b grid.PlotID) []grid.PlotID {
	return grid.SelectionIDs(world, a, b, m.store)
}

func (m *Manager) auditEntry(e journal.Entry) {
	if m.audit != nil {
		_ = m.audit.WriteEntry(e)
	}
}
