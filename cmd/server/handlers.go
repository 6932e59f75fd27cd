package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"plotgrid.dev/internal/grid"
	"plotgrid.dev/internal/manage"
	"plotgrid.dev/internal/protocol"
)

type mergeBody struct {
	Requester string `json:"requester,omitempty"`
	World     string `json:"world"`
	CornerA   string `json:"corner_a"`
	CornerB   string `json:"corner_b"`
}

type clearBody struct {
	Requester string `json:"requester,omitempty"`
	World     string `json:"world"`
	Plot      string `json:"plot"`
	Delete    bool   `json:"delete,omitempty"`
}

type opResult struct {
	OK    bool   `json:"ok"`
	Code  string `json:"code,omitempty"`
	Plots int    `json:"plots,omitempty"`
}

// mergeHandler expands the selection and runs the merge orchestration.
func mergeHandler(mgr *manage.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST only", http.StatusMethodNotAllowed)
			return
		}
		var body mergeBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeResult(w, http.StatusBadRequest, opResult{Code: protocol.ErrBadRequest})
			return
		}
		a, errA := grid.ParsePlotID(body.CornerA)
		b, errB := grid.ParsePlotID(body.CornerB)
		if body.World == "" || errA != nil || errB != nil {
			writeResult(w, http.StatusBadRequest, opResult{Code: protocol.ErrBadRequest})
			return
		}
		ids := mgr.SelectionIDs(body.World, a, b)
		err := mgr.Merge(manage.MergeRequest{Requester: body.Requester, World: body.World, PlotIDs: ids})
		switch {
		case err == nil:
			writeResult(w, http.StatusOK, opResult{OK: true, Plots: len(ids)})
		case isInsufficientFunds(err):
			writeResult(w, http.StatusPaymentRequired, opResult{Code: protocol.ErrInsufficientFunds})
		default:
			writeResult(w, http.StatusConflict, opResult{Code: protocol.ErrCommitFailed})
		}
	}
}

// clearHandler starts an asynchronous clear or delete.
func clearHandler(mgr *manage.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST only", http.StatusMethodNotAllowed)
			return
		}
		var body clearBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeResult(w, http.StatusBadRequest, opResult{Code: protocol.ErrBadRequest})
			return
		}
		id, err := grid.ParsePlotID(body.Plot)
		if body.World == "" || err != nil {
			writeResult(w, http.StatusBadRequest, opResult{Code: protocol.ErrBadRequest})
			return
		}
		err = mgr.Clear(manage.ClearRequest{
			Requester: body.Requester,
			World:     body.World,
			PlotID:    id,
			IsDelete:  body.Delete,
		})
		if errors.Is(err, manage.ErrBusy) {
			writeResult(w, http.StatusConflict, opResult{Code: protocol.ErrPlotBusy})
			return
		}
		writeResult(w, http.StatusAccepted, opResult{OK: true, Plots: 1})
	}
}

func isInsufficientFunds(err error) bool {
	var e *manage.InsufficientFundsError
	return errors.As(err, &e)
}

func writeResult(w http.ResponseWriter, status int, res opResult) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(res)
}
