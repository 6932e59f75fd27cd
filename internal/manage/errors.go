package manage

import (
	"errors"
	"fmt"
)

// ErrBusy rejects a clear while another clear is running on the same
// plot. The request is dropped, never queued.
var ErrBusy = errors.New("plot clear already in progress")

// InsufficientFundsError reports the full amount a merge would have
// cost. No state is mutated when this is returned.
type InsufficientFundsError struct {
	Required float64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: merge costs %s", formatMoney(e.Required))
}

// CommitError wraps a store failure during merge commit. The withdrawal
// that preceded it is not refunded here; retry policy lives above this
// core.
type CommitError struct {
	Err error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("merge commit failed: %v", e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }
