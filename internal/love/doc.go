// Package love defines the degree-2 Love number contract between the
// satellite model and whatever numerical code computes the viscoelastic
// response of a layered body.
//
// The package is deliberately small and dependency-free:
//
//   - [Numbers]: the complex triple (h2, k2, l2) for one forcing frequency
//   - [LayerParams]: the material description of a single layer, plus the
//     Maxwell-rheology helpers (Delta, MuTwiddle, LambdaTwiddle) shared by
//     the stress formulae
//   - [Solver]: the injected oracle interface
//   - [ExternalSolver]: wrapper around the external 4-layer Fortran code
//   - [StaticSolver]: fixed values, used by tests and for user-supplied
//     Love numbers
//
// Solvers are pure with respect to (layers, omega); callers are expected
// to cache results per frequency.
package love
