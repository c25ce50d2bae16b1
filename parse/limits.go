package parse

import "math"

// Limits bounds the resources one parse may consume. The zero value is
// not useful; start from DefaultLimits or UnlimitedLimits. Limits
// values are immutable and freely shareable across concurrent calls.
type Limits struct {
	// MaxInputSize bounds the source length in bytes. Exceeding it
	// is the only failure, besides a nil source, that aborts before
	// producing a result.
	MaxInputSize int
	// MaxTokenCount bounds lexing; past it the token stream is
	// truncated and parsing continues over what was produced.
	MaxTokenCount int
	// MaxStringLength bounds individual string and bare-word
	// literals.
	MaxStringLength int
	// MaxNestingDepth bounds descent into objects, expanded array
	// items and table rows.
	MaxNestingDepth int
	// MaxArraySize bounds the element count collected per array or
	// table.
	MaxArraySize int
}

// DefaultLimits is the conservative preset suitable for untrusted
// input.
func DefaultLimits() Limits {
	return Limits{
		MaxInputSize:    10 << 20,
		MaxTokenCount:   1_000_000,
		MaxStringLength: 64 << 10,
		MaxNestingDepth: 100,
		MaxArraySize:    1_000_000,
	}
}

// UnlimitedLimits is the trusted-batch preset: every ceiling is the
// representable maximum.
func UnlimitedLimits() Limits {
	return Limits{
		MaxInputSize:    math.MaxInt,
		MaxTokenCount:   math.MaxInt,
		MaxStringLength: math.MaxInt,
		MaxNestingDepth: math.MaxInt,
		MaxArraySize:    math.MaxInt,
	}
}
