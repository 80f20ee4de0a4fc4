package love

import (
	"context"
	"fmt"
)

// Solver computes the degree-2 Love numbers of a layered body under a
// periodic forcing at angular frequency omega [rad/s]. Layers are ordered
// innermost to outermost and there must be exactly four of them
// (core, ocean, lower ice, upper ice).
//
// A Solver must be a pure function of (layers, omega): the satellite model
// caches results per frequency and assumes repeat calls are redundant.
// Solves may be slow (an external numerical code); they honor ctx
// cancellation where possible but are not required to be preemptible.
type Solver interface {
	Solve(ctx context.Context, layers []LayerParams, omega float64) (Numbers, error)
}

// SolverFunc adapts a plain function to the Solver interface.
type SolverFunc func(ctx context.Context, layers []LayerParams, omega float64) (Numbers, error)

func (f SolverFunc) Solve(ctx context.Context, layers []LayerParams, omega float64) (Numbers, error) {
	return f(ctx, layers, omega)
}

// StaticSolver returns the same Love numbers for every forcing. Useful in
// tests and for running with user-supplied (e.g. published) values.
type StaticSolver struct {
	Numbers Numbers
}

func (s StaticSolver) Solve(_ context.Context, layers []LayerParams, _ float64) (Numbers, error) {
	if len(layers) != 4 {
		return Numbers{}, fmt.Errorf("%w: got %d", ErrLayerCount, len(layers))
	}
	return s.Numbers, nil
}
