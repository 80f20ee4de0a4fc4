package love

import "errors"

// Domain errors for Love number retrieval.
var (
	// ErrInvalidNumbers indicates a solver returned non-finite values, or
	// values with an implausible sign or magnitude.
	ErrInvalidNumbers = errors.New("love: implausible love numbers")

	// ErrExcessiveDelta indicates an ice layer's Delta parameter exceeds
	// the ~1e9 bound beyond which the external solver is unreliable.
	ErrExcessiveDelta = errors.New("love: delta exceeds solver stability bound")

	// ErrLayerCount indicates a layer stack the solver cannot accept.
	ErrLayerCount = errors.New("love: solver requires exactly 4 layers")

	// ErrSolverOutput indicates the external solver produced output that
	// could not be parsed.
	ErrSolverOutput = errors.New("love: unparseable solver output")
)

// MaxDelta is the largest ice-layer Delta the external 4-layer code is
// known to handle. Either shorten the forcing period or raise the
// viscosity to get back under it.
const MaxDelta = 1e9
