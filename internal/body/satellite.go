package body

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/san-kum/tidestress/internal/love"
)

// G is the Newtonian gravitational constant [m^3 kg^-1 s^-2].
const G = 6.67428e-11

// NumLayers is fixed by the external Love number code.
const NumLayers = 4

// MinMassRatio is the smallest plausible planet/satellite mass ratio.
const MinMassRatio = 10.0

// relaxedCoreFactor is how much the core rigidity is reduced for the NSR
// Love number solve, letting the tidally locked core deform as if fluid.
const relaxedCoreFactor = 1000.0

// Params is the full input set for a satellite. NSRPeriod semantics:
// zero means "no NSR forcing defined" (constructing an NSR stress field
// fails), +Inf means a fully relaxed shell (zero NSR stress).
type Params struct {
	Name          string
	PlanetMass    float64 // kg
	SemimajorAxis float64 // m
	Eccentricity  float64
	NSRPeriod     float64 // s
	Layers        []Layer // innermost first: CORE, OCEAN, ICE_LOWER, ICE_UPPER
	Solver        love.Solver
}

// Satellite aggregates the layer stack and orbital context, and owns the
// per-frequency Love number cache. Immutable after New; safe for
// concurrent use.
type Satellite struct {
	name          string
	layers        [NumLayers]Layer
	planetMass    float64
	semimajorAxis float64
	eccentricity  float64
	nsrPeriod     float64
	solver        love.Solver

	// Geometry is fixed at construction, so precompute it once.
	radius float64
	mass   float64

	mu    sync.Mutex
	cache map[loveKey]*loveEntry
}

type loveKey struct {
	omega       float64
	relaxedCore bool
}

type loveEntry struct {
	done chan struct{}
	n    love.Numbers
	err  error
}

// New validates the parameter set and builds an immutable Satellite.
// Validation order: layer count, per-layer sanity, density monotonicity,
// eccentricity, mass ratio, NSR period.
func New(p Params) (*Satellite, error) {
	if len(p.Layers) != NumLayers {
		return nil, fmt.Errorf("%w: got %d", ErrLayerCount, len(p.Layers))
	}
	for _, l := range p.Layers {
		if err := l.validate(); err != nil {
			return nil, err
		}
	}
	for i := 1; i < NumLayers; i++ {
		if p.Layers[i].Density > p.Layers[i-1].Density {
			return nil, fmt.Errorf("%w: layer %d (%s, %g kg/m^3) over layer %d (%s, %g kg/m^3)",
				ErrGravitationallyUnstable,
				i, p.Layers[i].Role, p.Layers[i].Density,
				i-1, p.Layers[i-1].Role, p.Layers[i-1].Density)
		}
	}
	if p.Eccentricity < 0 || p.Eccentricity >= 0.25 {
		return nil, paramErr(ErrLargeEccentricity, "ORBIT_ECCENTRICITY", p.Eccentricity)
	}

	s := &Satellite{
		name:          p.Name,
		planetMass:    p.PlanetMass,
		semimajorAxis: p.SemimajorAxis,
		eccentricity:  p.Eccentricity,
		nsrPeriod:     p.NSRPeriod,
		solver:        p.Solver,
		cache:         make(map[loveKey]*loveEntry),
	}
	copy(s.layers[:], p.Layers)

	for _, l := range s.layers {
		outer := s.radius + l.Thickness
		s.mass += (4.0 / 3.0) * math.Pi * (outer*outer*outer - s.radius*s.radius*s.radius) * l.Density
		s.radius = outer
	}

	if p.PlanetMass < MinMassRatio*s.mass {
		return nil, paramErr(ErrExcessiveSatelliteMass, "PLANET_MASS", p.PlanetMass)
	}
	if p.NSRPeriod < 0 {
		return nil, paramErr(ErrNegativeNSRPeriod, "NSR_PERIOD", p.NSRPeriod)
	}
	return s, nil
}

func (s *Satellite) Name() string { return s.name }

// Layers returns a copy of the layer stack, innermost first.
func (s *Satellite) Layers() []Layer {
	layers := make([]Layer, NumLayers)
	copy(layers, s.layers[:])
	return layers
}

// Surface returns the outermost (upper ice) layer.
func (s *Satellite) Surface() Layer { return s.layers[NumLayers-1] }

func (s *Satellite) PlanetMass() float64    { return s.planetMass }
func (s *Satellite) SemimajorAxis() float64 { return s.semimajorAxis }
func (s *Satellite) Eccentricity() float64  { return s.eccentricity }

// Radius is the sum of layer thicknesses [m].
func (s *Satellite) Radius() float64 { return s.radius }

// Mass is the sum of the layer shell masses [kg].
func (s *Satellite) Mass() float64 { return s.mass }

// MeanDensity is the bulk density mass/volume [kg/m^3].
func (s *Satellite) MeanDensity() float64 {
	return s.mass / ((4.0 / 3.0) * math.Pi * s.radius * s.radius * s.radius)
}

// SurfaceGravity is G*M/R^2 [m/s^2].
func (s *Satellite) SurfaceGravity() float64 {
	return G * s.mass / (s.radius * s.radius)
}

// OrbitPeriod is the Keplerian period 2*pi*sqrt(a^3/(G*Mp)) [s].
func (s *Satellite) OrbitPeriod() float64 {
	a := s.semimajorAxis
	return 2 * math.Pi * math.Sqrt(a*a*a/(G*s.planetMass))
}

// MeanMotion is the orbital angular frequency 2*pi/period [rad/s].
func (s *Satellite) MeanMotion() float64 {
	return 2 * math.Pi / s.OrbitPeriod()
}

// HasNSR reports whether an NSR period was specified. An infinite period
// counts: it describes a shell that rotates but is fully relaxed.
func (s *Satellite) HasNSR() bool { return s.nsrPeriod != 0 }

// NSRPeriod is the shell rotation period [s]; zero if absent.
func (s *Satellite) NSRPeriod() float64 { return s.nsrPeriod }

// NSRMeanMotion is 2*pi/NSRPeriod [rad/s]; zero for an absent or
// infinite period.
func (s *Satellite) NSRMeanMotion() float64 {
	if s.nsrPeriod == 0 || math.IsInf(s.nsrPeriod, 1) {
		return 0
	}
	return 2 * math.Pi / s.nsrPeriod
}

// LoveNumbers returns the degree-2 Love numbers for a forcing at omega,
// invoking the solver at most once per frequency. omega == 0 (infinite
// forcing period) short-circuits to zero without touching the solver:
// all stresses relax away regardless.
func (s *Satellite) LoveNumbers(ctx context.Context, omega float64) (love.Numbers, error) {
	return s.loveNumbers(ctx, loveKey{omega: omega})
}

// LoveNumbersRelaxedCore is LoveNumbers with the core rigidity reduced
// 1000x for the solve. The NSR forcing does not act on the tidally locked
// core, so its stresses are presumed relaxed; softening the core lets it
// deform toward its fluid shape and substantially raises h2.
func (s *Satellite) LoveNumbersRelaxedCore(ctx context.Context, omega float64) (love.Numbers, error) {
	return s.loveNumbers(ctx, loveKey{omega: omega, relaxedCore: true})
}

func (s *Satellite) loveNumbers(ctx context.Context, key loveKey) (love.Numbers, error) {
	if key.omega == 0 {
		return love.Zero, nil
	}

	s.mu.Lock()
	if e, ok := s.cache[key]; ok {
		s.mu.Unlock()
		select {
		case <-e.done:
			return e.n, e.err
		case <-ctx.Done():
			return love.Numbers{}, ctx.Err()
		}
	}
	e := &loveEntry{done: make(chan struct{})}
	s.cache[key] = e
	s.mu.Unlock()

	e.n, e.err = s.solve(ctx, key)
	close(e.done)
	return e.n, e.err
}

func (s *Satellite) solve(ctx context.Context, key loveKey) (love.Numbers, error) {
	layers := make([]love.LayerParams, NumLayers)
	for i, l := range s.layers {
		layers[i] = l.LayerParams
	}
	if key.relaxedCore {
		layers[0].LameMu /= relaxedCoreFactor
	}

	n, err := s.solver.Solve(ctx, layers, key.omega)
	if err != nil {
		return love.Numbers{}, err
	}
	if err := n.Validate(); err != nil {
		return love.Numbers{}, err
	}
	return n, nil
}

// String renders the satellite and its derived quantities, one name=value
// pair per line.
func (s *Satellite) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "SYSTEM_ID            = %s\n", s.name)
	fmt.Fprintf(&b, "PLANET_MASS          = %g\n", s.planetMass)
	fmt.Fprintf(&b, "ORBIT_ECCENTRICITY   = %g\n", s.eccentricity)
	fmt.Fprintf(&b, "ORBIT_SEMIMAJOR_AXIS = %g\n", s.semimajorAxis)
	fmt.Fprintf(&b, "NSR_PERIOD           = %g\n", s.nsrPeriod)
	fmt.Fprintf(&b, "# RADIUS          = %g\n", s.Radius())
	fmt.Fprintf(&b, "# MASS            = %g\n", s.Mass())
	fmt.Fprintf(&b, "# DENSITY         = %g\n", s.MeanDensity())
	fmt.Fprintf(&b, "# SURFACE_GRAVITY = %g\n", s.SurfaceGravity())
	fmt.Fprintf(&b, "# ORBIT_PERIOD    = %g\n", s.OrbitPeriod())
	fmt.Fprintf(&b, "# MEAN_MOTION     = %g\n", s.MeanMotion())
	for i, l := range s.layers {
		fmt.Fprintf(&b, "\nLAYER_ID_%d    = %s\n", i, l.Role)
		fmt.Fprintf(&b, "DENSITY_%d     = %g\n", i, l.Density)
		fmt.Fprintf(&b, "LAME_MU_%d     = %g\n", i, l.LameMu)
		fmt.Fprintf(&b, "LAME_LAMBDA_%d = %g\n", i, l.LameLambda)
		fmt.Fprintf(&b, "THICKNESS_%d   = %g\n", i, l.Thickness)
		fmt.Fprintf(&b, "VISCOSITY_%d   = %g\n", i, l.Viscosity)
		fmt.Fprintf(&b, "# MAXWELL_TIME_%d = %g\n", i, l.MaxwellTime())
	}
	return b.String()
}
