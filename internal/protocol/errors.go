package protocol

const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"

	// World routing/state.
	ErrWorldNotFound = "E_WORLD_NOT_FOUND"

	// Plot operations.
	ErrBadRequest        = "E_BAD_REQUEST"
	ErrNoPermission      = "E_NO_PERMISSION"
	ErrInsufficientFunds = "E_INSUFFICIENT_FUNDS"
	ErrPlotBusy          = "E_PLOT_BUSY"
	ErrCommitFailed      = "E_COMMIT_FAILED"
	ErrInternal          = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest:   {},
	ErrWorldNotFound:     {},
	ErrBadRequest:        {},
	ErrNoPermission:      {},
	ErrInsufficientFunds: {},
	ErrPlotBusy:          {},
	ErrCommitFailed:      {},
	ErrInternal:          {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
