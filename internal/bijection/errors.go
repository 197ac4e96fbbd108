package bijection

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrDimensionMismatch reports input/condition/output dimensions
	// that disagree with a bijection's declared shape.
	ErrDimensionMismatch = errors.New("bijection: dimension mismatch")

	// ErrInvalidPermutation reports a Permute constructed with an index
	// array that is not a bijection over [0, dim).
	ErrInvalidPermutation = errors.New("bijection: invalid permutation")

	// ErrUnsupportedOperation reports an inverse requested on a
	// bijection with no tractable inverse. This is a permanent,
	// structural limitation, not a transient failure: callers must
	// design flow direction (sampling vs. density evaluation) around
	// it rather than retry.
	ErrUnsupportedOperation = errors.New("bijection: unsupported operation")

	// ErrNumericalInstability is advisory: it flags log-magnitudes
	// that reached representable-range extremes despite the shift
	// trick in LogMatMulExp. Computed values are still returned
	// alongside it; callers may inspect or ignore it.
	ErrNumericalInstability = errors.New("bijection: numerical instability")
)

// DimensionError provides detailed information about a dimension
// mismatch. It unwraps to ErrDimensionMismatch.
type DimensionError struct {
	Op   string // Operation that detected the mismatch (e.g. "Chain.Transform")
	Want int    // Declared dimension
	Got  int    // Dimension actually supplied
}

// Error implements the error interface.
func (e *DimensionError) Error() string {
	return fmt.Sprintf("bijection: %s: dimension mismatch: want %d, got %d", e.Op, e.Want, e.Got)
}

// Unwrap ties DimensionError into the sentinel taxonomy so callers can
// match with errors.Is(err, ErrDimensionMismatch).
func (e *DimensionError) Unwrap() error { return ErrDimensionMismatch }
