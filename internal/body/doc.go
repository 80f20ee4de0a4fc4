// Package body models the internal structure and orbital context of an
// icy satellite as a stack of four concentric homogeneous layers.
//
// A [Satellite] is built once from a fully specified [Params], validates
// everything eagerly, and is immutable afterwards; every derived quantity
// (radius, mass, surface gravity, mean motion) is plain algebra over the
// validated inputs. Love numbers are fetched through an injected
// [love.Solver] and memoized per forcing frequency, so a successfully
// constructed Satellite can be queried concurrently without further
// validation failures.
//
// Layer ordering is fixed by the external Love number code: CORE, OCEAN,
// ICE_LOWER, ICE_UPPER, innermost to outermost.
package body
