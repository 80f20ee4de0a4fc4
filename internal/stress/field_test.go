package stress

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tidestress/internal/body"
	"github.com/san-kum/tidestress/internal/love"
)

var plausibleLove = love.Numbers{
	H2: complex(1.2, -1e-3),
	K2: complex(0.3, -1e-4),
	L2: complex(0.03, -1e-5),
}

func europaSatellite(eccentricity, nsrPeriod float64) *body.Satellite {
	specs := []struct {
		role body.Role
		p    love.LayerParams
	}{
		{body.RoleCore, love.LayerParams{Density: 3300, LameMu: 4.0e10, LameLambda: 4.0e10, Thickness: 1.426e6}},
		{body.RoleOcean, love.LayerParams{Density: 1000, LameMu: 0, LameLambda: 2.2e9, Thickness: 1.0e5}},
		{body.RoleIceLower, love.LayerParams{Density: 940, LameMu: 3.487e9, LameLambda: 6.78e9, Thickness: 2.5e4, Viscosity: 1.0e14}},
		{body.RoleIceUpper, love.LayerParams{Density: 940, LameMu: 3.487e9, LameLambda: 6.78e9, Thickness: 1.0e4, Viscosity: 1.0e21}},
	}
	layers := make([]body.Layer, 0, len(specs))
	for _, s := range specs {
		l, err := body.NewLayer(s.role, s.p, 0)
		Expect(err).NotTo(HaveOccurred())
		layers = append(layers, l)
	}

	sat, err := body.New(body.Params{
		Name:          "JupiterEuropa",
		PlanetMass:    1.8986e27,
		SemimajorAxis: 6.711e8,
		Eccentricity:  eccentricity,
		NSRPeriod:     nsrPeriod,
		Layers:        layers,
		Solver:        love.StaticSolver{Numbers: plausibleLove},
	})
	Expect(err).NotTo(HaveOccurred())
	return sat
}

// expectTensorsEqual compares componentwise with a tolerance scaled to
// the magnitudes involved.
func expectTensorsEqual(a, b Tensor) {
	for _, pair := range [][2]float64{
		{a.Ttt, b.Ttt},
		{a.Tpt, b.Tpt},
		{a.Tpp, b.Tpp},
	} {
		tol := 1e-9 * (1 + math.Abs(pair[0]) + math.Abs(pair[1]))
		Expect(pair[0]).To(BeNumerically("~", pair[1], tol))
	}
}

var samplePoints = []struct{ theta, phi, t float64 }{
	{0, 0, 0},                  // north pole, pericenter
	{math.Pi, 1.0, 2000},       // south pole
	{math.Pi / 2, math.Pi / 3, 0},
	{math.Pi / 4, math.Pi / 3, 10000},
	{math.Pi / 2, 5.0, 1e6},
}

var _ = Describe("Diurnal field", func() {
	var (
		sat   *body.Satellite
		field *Field
	)

	BeforeEach(func() {
		sat = europaSatellite(0.0094, 3.156e12)
		var err error
		field, err = NewDiurnal(context.Background(), sat)
		Expect(err).NotTo(HaveOccurred())
	})

	It("forces at the orbital mean motion", func() {
		Expect(field.Omega()).To(Equal(sat.MeanMotion()))
		Expect(field.Forcing()).To(Equal(Diurnal))
	})

	It("is periodic in the orbital period", func() {
		period := 2 * math.Pi / sat.MeanMotion()
		for _, p := range samplePoints {
			a := Tensor{field.Ttt(p.theta, p.phi, p.t), field.Tpt(p.theta, p.phi, p.t), field.Tpp(p.theta, p.phi, p.t)}
			b := Tensor{field.Ttt(p.theta, p.phi, p.t+period), field.Tpt(p.theta, p.phi, p.t+period), field.Tpp(p.theta, p.phi, p.t+period)}
			expectTensorsEqual(a, b)
		}
	})

	It("produces finite stresses of a plausible magnitude", func() {
		ttt := field.Ttt(math.Pi/4, math.Pi/3, 10000)
		Expect(math.IsNaN(ttt) || math.IsInf(ttt, 0)).To(BeFalse())
		// Diurnal stresses on Europa are tens of kPa.
		Expect(math.Abs(ttt)).To(BeNumerically("<", 1e7))
		Expect(math.Abs(ttt)).To(BeNumerically(">", 0))
	})

	It("vanishes on a circular orbit", func() {
		circ := europaSatellite(0, 3.156e12)
		f, err := NewDiurnal(context.Background(), circ)
		Expect(err).NotTo(HaveOccurred())
		for _, p := range samplePoints {
			Expect(f.Ttt(p.theta, p.phi, p.t)).To(BeZero())
			Expect(f.Tpt(p.theta, p.phi, p.t)).To(BeZero())
			Expect(f.Tpp(p.theta, p.phi, p.t)).To(BeZero())
		}
	})
})

var _ = Describe("NSR field", func() {
	It("requires an NSR period", func() {
		locked := europaSatellite(0.0094, 0)
		_, err := NewNSR(context.Background(), locked)
		Expect(err).To(MatchError(body.ErrMissingNSRPeriod))
	})

	It("forces at twice the shell rotation rate", func() {
		sat := europaSatellite(0.0094, 3.156e12)
		field, err := NewNSR(context.Background(), sat)
		Expect(err).NotTo(HaveOccurred())
		Expect(field.Omega()).To(BeNumerically("~", 4*math.Pi/3.156e12, 1e-24))
	})

	It("is periodic in half the NSR period", func() {
		sat := europaSatellite(0.0094, 3.156e12)
		field, err := NewNSR(context.Background(), sat)
		Expect(err).NotTo(HaveOccurred())

		period := math.Pi / sat.NSRMeanMotion()
		for _, p := range samplePoints {
			a := Tensor{field.Ttt(p.theta, p.phi, p.t), field.Tpt(p.theta, p.phi, p.t), field.Tpp(p.theta, p.phi, p.t)}
			b := Tensor{field.Ttt(p.theta, p.phi, p.t+period), field.Tpt(p.theta, p.phi, p.t+period), field.Tpp(p.theta, p.phi, p.t+period)}
			expectTensorsEqual(a, b)
		}
	})

	It("relaxes to zero for an infinite NSR period", func() {
		sat := europaSatellite(0.0094, math.Inf(1))
		field, err := NewNSR(context.Background(), sat)
		Expect(err).NotTo(HaveOccurred())
		for _, p := range samplePoints {
			Expect(field.Ttt(p.theta, p.phi, p.t)).To(BeZero())
			Expect(field.Tpt(p.theta, p.phi, p.t)).To(BeZero())
			Expect(field.Tpp(p.theta, p.phi, p.t)).To(BeZero())
		}
	})
})

var _ = Describe("Calculator", func() {
	It("rejects an empty field list", func() {
		_, err := NewCalculator()
		Expect(err).To(MatchError(ErrNoFields))
	})

	It("rejects fields bound to different satellites", func() {
		satA := europaSatellite(0.0094, 3.156e12)
		satB := europaSatellite(0.0094, 3.156e12)
		fa, err := NewDiurnal(context.Background(), satA)
		Expect(err).NotTo(HaveOccurred())
		fb, err := NewDiurnal(context.Background(), satB)
		Expect(err).NotTo(HaveOccurred())

		_, err = NewCalculator(fa, fb)
		Expect(err).To(MatchError(ErrMixedSatellites))
	})

	It("sums fields componentwise", func() {
		sat := europaSatellite(0.0094, 3.156e12)
		diurnal, err := NewDiurnal(context.Background(), sat)
		Expect(err).NotTo(HaveOccurred())
		nsr, err := NewNSR(context.Background(), sat)
		Expect(err).NotTo(HaveOccurred())

		calc, err := NewCalculator(diurnal, nsr)
		Expect(err).NotTo(HaveOccurred())

		for _, p := range samplePoints {
			sum := calc.Tensor(p.theta, p.phi, p.t)
			want := Tensor{
				Ttt: diurnal.Ttt(p.theta, p.phi, p.t) + nsr.Ttt(p.theta, p.phi, p.t),
				Tpt: diurnal.Tpt(p.theta, p.phi, p.t) + nsr.Tpt(p.theta, p.phi, p.t),
				Tpp: diurnal.Tpp(p.theta, p.phi, p.t) + nsr.Tpp(p.theta, p.phi, p.t),
			}
			expectTensorsEqual(sum, want)
		}
	})

	It("computes a finite Europa tensor end to end", func() {
		sat := europaSatellite(0.0094, 3.156e12)
		diurnal, err := NewDiurnal(context.Background(), sat)
		Expect(err).NotTo(HaveOccurred())
		nsr, err := NewNSR(context.Background(), sat)
		Expect(err).NotTo(HaveOccurred())
		calc, err := NewCalculator(diurnal, nsr)
		Expect(err).NotTo(HaveOccurred())

		tau := calc.Tensor(math.Pi/4, math.Pi/3, 10000)
		for _, v := range []float64{tau.Ttt, tau.Tpt, tau.Tpp} {
			Expect(math.IsNaN(v) || math.IsInf(v, 0)).To(BeFalse())
		}
	})
})
