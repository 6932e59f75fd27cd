package manage

import (
	"strconv"

	"plotgrid.dev/internal/captions"
	"plotgrid.dev/internal/grid"
	"plotgrid.dev/internal/persistence/journal"
)

// MergeRequest asks for every listed plot to end up in one merged
// group. PlotIDs is the already-expanded selection (see SelectionIDs).
type MergeRequest struct {
	Requester string
	World     string
	PlotIDs   []grid.PlotID
}

// Merge charges the configured per-plot price and commits the merge.
// The withdrawal happens before the commit; a commit failure is
// reported but never retried here, since a retry would double-charge.
func (m *Manager) Merge(req MergeRequest) error {
	var cost float64
	if w, ok := m.cfg.World(req.World); ok && w.UseEconomy && m.ledger != nil {
		cost = float64(len(req.PlotIDs)) * w.MergePrice
	}
	if cost > 0 {
		if m.ledger.Balance(req.Requester) < cost {
			m.notifier.Caption(req.Requester, captions.CannotAffordMerge, formatMoney(cost))
			return &InsufficientFundsError{Required: cost}
		}
		if err := m.ledger.Withdraw(req.Requester, cost); err != nil {
			m.notifier.Caption(req.Requester, captions.CannotAffordMerge, formatMoney(cost))
			return &InsufficientFundsError{Required: cost}
		}
		m.notifier.Caption(req.Requester, captions.RemovedBalance, formatMoney(cost))
	}
	if err := m.store.MergeCommit(req.World, req.PlotIDs, true); err != nil {
		m.notifier.Caption(req.Requester, captions.MergeFailed)
		return &CommitError{Err: err}
	}
	m.notifier.Caption(req.Requester, captions.MergeDone)
	m.auditEntry(journal.Entry{
		Kind:  journal.KindMerge,
		World: req.World,
		Plot:  plotIDList(req.PlotIDs),
		Actor: req.Requester,
	})
	return nil
}

func formatMoney(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

func plotIDList(ids []grid.PlotID) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ","
		}
		out += id.String()
	}
	return out
}
