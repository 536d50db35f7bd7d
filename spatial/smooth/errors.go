package smooth

import "errors"

var (
	// ErrConfiguration reports invalid parameters or mismatched inputs.
	// Nothing is computed when it is returned.
	ErrConfiguration = errors.New("smooth: configuration error")

	// ErrComputation reports a numerical failure during processing.
	ErrComputation = errors.New("smooth: computation error")
)
