package parse

import "errors"

// Fail-fast conditions. These are the only errors Parse returns; every
// other problem is recorded in the result's diagnostic list while
// parsing continues. Messages stay free of internal state.
var (
	ErrNoSource      = errors.New("no source provided")
	ErrInputTooLarge = errors.New("input exceeds configured maximum size")
)
