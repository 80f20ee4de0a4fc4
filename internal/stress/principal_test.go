package stress

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Principal stresses", func() {
	It("returns the diagonal of an already-diagonal tensor", func() {
		p := Tensor{Ttt: 3e5, Tpt: 0, Tpp: -1e5}.Principal()
		Expect(p.Max).To(BeNumerically("~", 3e5, 1e-6))
		Expect(p.Min).To(BeNumerically("~", -1e5, 1e-6))
	})

	It("diagonalizes pure shear to +s and -s", func() {
		s := 2.5e5
		p := Tensor{Ttt: 0, Tpt: s, Tpp: 0}.Principal()
		Expect(p.Max).To(BeNumerically("~", s, 1e-6))
		Expect(p.Min).To(BeNumerically("~", -s, 1e-6))
	})

	It("preserves the trace", func() {
		tensors := []Tensor{
			{Ttt: 1e5, Tpt: 3e4, Tpp: -2e5},
			{Ttt: -7e4, Tpt: -1e4, Tpp: 5e4},
			{Ttt: 0, Tpt: 0, Tpp: 0},
		}
		for _, tau := range tensors {
			p := tau.Principal()
			Expect(p.Max + p.Min).To(BeNumerically("~", tau.Trace(), 1e-6*(1+math.Abs(tau.Trace()))))
			Expect(p.Max).To(BeNumerically(">=", p.Min))
		}
	})

	It("keeps the azimuth in [0, pi)", func() {
		tensors := []Tensor{
			{Ttt: 1e5, Tpt: 3e4, Tpp: -2e5},
			{Ttt: -1e5, Tpt: -3e4, Tpp: 2e5},
			{Ttt: 0, Tpt: 1e5, Tpp: 0},
			{Ttt: 4e5, Tpt: 0, Tpp: 1e5},
		}
		for _, tau := range tensors {
			p := tau.Principal()
			Expect(p.Azimuth).To(BeNumerically(">=", 0))
			Expect(p.Azimuth).To(BeNumerically("<", math.Pi))
		}
	})

	It("points the tensile axis along north for uniaxial north-south tension", func() {
		// Ttt is the most tensile component and there is no shear, so the
		// most tensile axis runs north-south: azimuth 0.
		p := Tensor{Ttt: 1e5, Tpt: 0, Tpp: -1e5}.Principal()
		Expect(math.Min(p.Azimuth, math.Pi-p.Azimuth)).To(BeNumerically("~", 0, 1e-9))

		// East-west tension instead: azimuth pi/2.
		p = Tensor{Ttt: -1e5, Tpt: 0, Tpp: 1e5}.Principal()
		Expect(p.Azimuth).To(BeNumerically("~", math.Pi/2, 1e-9))
	})
})
