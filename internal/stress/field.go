package stress

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/san-kum/tidestress/internal/body"
	"github.com/san-kum/tidestress/internal/love"
)

// Forcing selects which tidal forcing a Field evaluates.
type Forcing int

const (
	// Diurnal is the eccentricity tide at the orbital frequency.
	Diurnal Forcing = iota
	// NSR is the stress from non-synchronous rotation of the shell, at
	// twice the shell rotation rate (the pattern is degree 2).
	NSR
)

func (f Forcing) String() string {
	switch f {
	case Diurnal:
		return "Diurnal"
	case NSR:
		return "NSR"
	default:
		return fmt.Sprintf("Forcing(%d)", int(f))
	}
}

// Field is one tidal stress field bound to a satellite. Constructing a
// Field triggers the (possibly slow) Love number retrieval for its
// forcing frequency; evaluation afterwards is cheap, pure and
// concurrency-safe.
type Field struct {
	sat     *body.Satellite
	forcing Forcing
	omega   float64 // forcing angular frequency [rad/s]
	love    love.Numbers

	// Surface-layer coefficients of Wahr et al. (2008), fixed per
	// (satellite, forcing frequency).
	b1, g1, b2, g2, gamma complex128

	// scale is Z/(2*g*R); the remaining per-component numeric factors
	// live in the component functions.
	scale float64
}

// NewDiurnal builds the eccentricity tide field. The forcing frequency is
// the orbital mean motion and amplitudes scale with eccentricity.
func NewDiurnal(ctx context.Context, sat *body.Satellite) (*Field, error) {
	omega := sat.MeanMotion()
	n, err := sat.LoveNumbers(ctx, omega)
	if err != nil {
		return nil, fmt.Errorf("diurnal love numbers: %w", err)
	}
	return newField(sat, Diurnal, omega, n), nil
}

// NewNSR builds the non-synchronous rotation field. The forcing frequency
// is 4*pi/NSRPeriod: a surface point sweeps through the full degree-2
// pattern once per half rotation. A satellite without an NSR period
// cannot host this field; an infinite period yields a valid field whose
// stresses are identically zero.
func NewNSR(ctx context.Context, sat *body.Satellite) (*Field, error) {
	if !sat.HasNSR() {
		return nil, fmt.Errorf("nsr field: %w", body.ErrMissingNSRPeriod)
	}
	omega := 2 * sat.NSRMeanMotion()
	n, err := sat.LoveNumbersRelaxedCore(ctx, omega)
	if err != nil {
		return nil, fmt.Errorf("nsr love numbers: %w", err)
	}
	return newField(sat, NSR, omega, n), nil
}

func newField(sat *body.Satellite, forcing Forcing, omega float64, n love.Numbers) *Field {
	f := &Field{sat: sat, forcing: forcing, omega: omega, love: n}
	f.scale = f.z() / (2 * sat.SurfaceGravity() * sat.Radius())

	if omega != 0 {
		surf := sat.Surface().LayerParams
		mu := surf.MuTwiddle(omega)
		lambda := surf.LambdaTwiddle(omega)
		alpha := (3*lambda + 2*mu) / (lambda + 2*mu)

		common := alpha * (n.H2 - 3*n.L2)
		f.b1 = mu * (common + 3*n.L2)
		f.g1 = mu * (common - n.L2)
		f.b2 = mu * (common - 3*n.L2)
		f.g2 = mu * (common + n.L2)
		f.gamma = mu * n.L2
	}
	return f
}

// z is the constant 3*G*Mp*R^2/(2*a^3) common to the potential terms.
func (f *Field) z() float64 {
	r := f.sat.Radius()
	a := f.sat.SemimajorAxis()
	return 3 * body.G * f.sat.PlanetMass() * r * r / (2 * a * a * a)
}

func (f *Field) Satellite() *body.Satellite { return f.sat }
func (f *Field) Forcing() Forcing           { return f.forcing }
func (f *Field) Omega() float64             { return f.omega }
func (f *Field) LoveNumbers() love.Numbers  { return f.love }

// ForcingPeriod is 2*pi/omega [s]; +Inf for a zero frequency.
func (f *Field) ForcingPeriod() float64 {
	if f.omega == 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi / f.omega
}

// Ttt is the north-south (co-latitudinal) stress component [Pa].
func (f *Field) Ttt(theta, phi, t float64) float64 {
	if f.omega == 0 {
		return 0
	}
	cos2t := complex(math.Cos(2*theta), 0)
	switch f.forcing {
	case NSR:
		v := (f.b1 - f.g1*cos2t) * cmplx.Exp(1i*complex(2*phi+f.omega*t, 0))
		return real(v) * f.scale
	default:
		osc := cmplx.Exp(1i * complex(f.omega*t, 0))
		v := 3*(f.b1-f.g1*cos2t)*osc*complex(math.Cos(2*phi), 0) -
			(f.b1+3*f.g1*cos2t)*osc -
			4i*(f.b1-f.g1*cos2t)*osc*complex(math.Sin(2*phi), 0)
		return real(v) * f.sat.Eccentricity() * f.scale
	}
}

// Tpp is the east-west (longitudinal) stress component [Pa].
func (f *Field) Tpp(theta, phi, t float64) float64 {
	if f.omega == 0 {
		return 0
	}
	cos2t := complex(math.Cos(2*theta), 0)
	switch f.forcing {
	case NSR:
		v := (f.b2 - f.g2*cos2t) * cmplx.Exp(1i*complex(2*phi+f.omega*t, 0))
		return real(v) * f.scale
	default:
		osc := cmplx.Exp(1i * complex(f.omega*t, 0))
		v := 3*(f.b2-f.g2*cos2t)*osc*complex(math.Cos(2*phi), 0) -
			(f.b2+3*f.g2*cos2t)*osc -
			4i*(f.b2-f.g2*cos2t)*osc*complex(math.Sin(2*phi), 0)
		return real(v) * f.sat.Eccentricity() * f.scale
	}
}

// Tpt is the shear component (Tpt == Ttp by symmetry) [Pa].
func (f *Field) Tpt(theta, phi, t float64) float64 {
	if f.omega == 0 {
		return 0
	}
	cost := complex(math.Cos(theta), 0)
	switch f.forcing {
	case NSR:
		v := 1i * f.gamma * cmplx.Exp(1i*complex(2*phi+f.omega*t, 0)) * cost
		return real(v) * 4 * f.scale
	default:
		osc := cmplx.Exp(1i * complex(f.omega*t, 0))
		v := -4i*f.gamma*osc*cost*complex(math.Cos(2*phi), 0) -
			3*f.gamma*osc*cost*complex(math.Sin(2*phi), 0)
		return real(v) * 4 * f.sat.Eccentricity() * f.scale
	}
}
