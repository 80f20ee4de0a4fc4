package stress

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Principal holds the eigendecomposition of a surface stress tensor:
// the two principal stress magnitudes (tension positive) and the azimuth
// of the most tensile axis, measured east of north in [0, pi).
type Principal struct {
	Max     float64
	Min     float64
	Azimuth float64
}

// Principal diagonalizes the tensor. The 2x2 symmetric eigenproblem always
// converges, so a failed factorization can only mean non-finite input.
func (t Tensor) Principal() Principal {
	sym := mat.NewSymDense(2, []float64{
		t.Ttt, t.Tpt,
		t.Tpt, t.Tpp,
	})

	var eig mat.EigenSym
	if !eig.Factorize(sym, true) {
		return Principal{Max: math.NaN(), Min: math.NaN(), Azimuth: math.NaN()}
	}

	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// gonum orders eigenvalues ascending.
	p := Principal{Max: vals[1], Min: vals[0]}

	// The eigenvector lives in the (theta, phi) tangent basis; theta
	// points south, so east-of-north azimuth flips the theta component.
	az := math.Atan2(vecs.At(1, 1), -vecs.At(0, 1))
	az = math.Mod(az, math.Pi)
	if az < 0 {
		az += math.Pi
	}
	p.Azimuth = az
	return p
}
