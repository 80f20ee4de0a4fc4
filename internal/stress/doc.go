// Package stress evaluates the surface membrane stress tensor induced on
// an icy satellite by tidal forcings.
//
// A [Field] is one forcing (diurnal eccentricity tide or non-synchronous
// rotation) bound to a validated [body.Satellite]. The two forcings share
// a single tensor functional form from Wahr et al. (2008) and differ only
// in forcing frequency and amplitude terms, so Field carries a [Forcing]
// variant tag instead of a type hierarchy. All frequency-dependent
// coefficients are fixed at construction; the component functions
// Ttt/Tpt/Tpp are pure trigonometry afterwards and never fail.
//
// Conventions: theta is co-latitude from the north pole in [0, pi], phi is
// east-positive longitude from the sub-planet meridian in [0, 2*pi), t is
// seconds since pericenter passage. Angles are radians, stresses Pa.
// Evaluation near the poles loses precision in the trigonometric
// recombination; that is a documented limitation of the formulation, not
// something the package masks.
//
// A [Calculator] sums any number of Fields bound to the same satellite
// into one symmetric 2x2 tensor per query point.
package stress
