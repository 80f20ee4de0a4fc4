package love

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Numbers holds the degree-2 complex Love numbers for a single forcing
// frequency. The imaginary parts encode the phase lag between the tidal
// potential and the body's response; for a dissipative (Maxwell) body
// they are negative.
type Numbers struct {
	H2 complex128
	K2 complex128
	L2 complex128
}

// Zero is the response of a fully relaxed body (infinite forcing period).
// All stresses driven by such a forcing have decayed away, so the actual
// values are irrelevant as long as they are finite.
var Zero = Numbers{}

func (n Numbers) String() string {
	return fmt.Sprintf("h2=%v k2=%v l2=%v", n.H2, n.K2, n.L2)
}

// IsFinite reports whether every component of every Love number is a
// finite float.
func (n Numbers) IsFinite() bool {
	for _, c := range []complex128{n.H2, n.K2, n.L2} {
		if cmplx.IsNaN(c) || cmplx.IsInf(c) {
			return false
		}
	}
	return true
}

// Validate sanity-checks a solver result. The checks mirror the physical
// expectations for a dissipative body:
//
//   - all components finite
//   - Re(h2) and Re(l2) non-negative
//   - imaginary parts no larger in magnitude than the real parts
//   - Im(h2) and Im(l2) non-positive (response lags the forcing)
//
// k2 is only checked for finiteness; the external code reports it but the
// membrane stress formulae never use it directly.
func (n Numbers) Validate() error {
	if !n.IsFinite() {
		return fmt.Errorf("%w: non-finite component in %v", ErrInvalidNumbers, n)
	}
	if real(n.H2) < 0 || real(n.L2) < 0 {
		return fmt.Errorf("%w: negative real part in %v", ErrInvalidNumbers, n)
	}
	if math.Abs(imag(n.H2)) > math.Abs(real(n.H2)) ||
		math.Abs(imag(n.L2)) > math.Abs(real(n.L2)) {
		return fmt.Errorf("%w: imaginary part dominates real part in %v", ErrInvalidNumbers, n)
	}
	if imag(n.H2) > 0 || imag(n.L2) > 0 {
		return fmt.Errorf("%w: positive imaginary part in %v", ErrInvalidNumbers, n)
	}
	return nil
}

// LayerParams is the material description of one homogeneous layer as seen
// by a Love number solver. Layers are always passed innermost first.
// All quantities are SI: kg/m^3, Pa, m, Pa*s.
type LayerParams struct {
	Density    float64
	LameMu     float64
	LameLambda float64
	Thickness  float64
	Viscosity  float64
}

// MaxwellTime is the layer's viscous relaxation time, viscosity/mu [s].
// Inviscid or rigidity-free layers (ocean, core placeholders) report zero.
func (l LayerParams) MaxwellTime() float64 {
	if l.Viscosity == 0 || l.LameMu == 0 {
		return 0
	}
	return l.Viscosity / l.LameMu
}

// BulkModulus returns kappa = lambda + 2/3 mu [Pa].
func (l LayerParams) BulkModulus() float64 {
	return l.LameLambda + (2.0/3.0)*l.LameMu
}

// YoungsModulus returns E = mu(3 lambda + 2 mu)/(lambda + mu) [Pa].
func (l LayerParams) YoungsModulus() float64 {
	return l.LameMu * (3.0*l.LameLambda + 2.0*l.LameMu) / (l.LameLambda + l.LameMu)
}

// PoissonsRatio returns nu = lambda / 2(lambda + mu).
func (l LayerParams) PoissonsRatio() float64 {
	return l.LameLambda / (2.0 * (l.LameLambda + l.LameMu))
}

// PWaveVelocity returns the compression wave speed sqrt(kappa/rho) [m/s].
func (l LayerParams) PWaveVelocity() float64 {
	return math.Sqrt(l.BulkModulus() / l.Density)
}
