package body

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/san-kum/tidestress/internal/love"
)

// countingSolver returns fixed, plausible Love numbers and counts how
// many times it is invoked.
type countingSolver struct {
	calls atomic.Int64
	delay time.Duration
	n     love.Numbers
}

func newCountingSolver() *countingSolver {
	return &countingSolver{
		n: love.Numbers{
			H2: complex(1.2, -1e-3),
			K2: complex(0.3, -1e-4),
			L2: complex(0.03, -1e-5),
		},
	}
}

func (c *countingSolver) Solve(_ context.Context, layers []love.LayerParams, _ float64) (love.Numbers, error) {
	c.calls.Add(1)
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	if len(layers) != NumLayers {
		return love.Numbers{}, love.ErrLayerCount
	}
	return c.n, nil
}

func europaLayers(t *testing.T) []Layer {
	t.Helper()
	specs := []struct {
		role Role
		p    love.LayerParams
	}{
		{RoleCore, love.LayerParams{Density: 3300, LameMu: 4.0e10, LameLambda: 4.0e10, Thickness: 1.426e6}},
		{RoleOcean, love.LayerParams{Density: 1000, LameMu: 0, LameLambda: 2.2e9, Thickness: 1.0e5}},
		{RoleIceLower, love.LayerParams{Density: 940, LameMu: 3.487e9, LameLambda: 6.78e9, Thickness: 2.5e4, Viscosity: 1.0e14}},
		{RoleIceUpper, love.LayerParams{Density: 940, LameMu: 3.487e9, LameLambda: 6.78e9, Thickness: 1.0e4, Viscosity: 1.0e21}},
	}
	layers := make([]Layer, 0, len(specs))
	for _, s := range specs {
		l, err := NewLayer(s.role, s.p, 0)
		if err != nil {
			t.Fatalf("layer %s: %v", s.role, err)
		}
		layers = append(layers, l)
	}
	return layers
}

func europaParams(t *testing.T, solver love.Solver) Params {
	t.Helper()
	return Params{
		Name:          "JupiterEuropa",
		PlanetMass:    1.8986e27,
		SemimajorAxis: 6.711e8,
		Eccentricity:  0.0094,
		NSRPeriod:     3.156e12,
		Layers:        europaLayers(t),
		Solver:        solver,
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Params)
		wantErr error
	}{
		{"valid", func(p *Params) {}, nil},
		{"three layers", func(p *Params) { p.Layers = p.Layers[:3] }, ErrLayerCount},
		{"five layers", func(p *Params) { p.Layers = append(p.Layers, p.Layers[3]) }, ErrLayerCount},
		{"density inversion", func(p *Params) {
			p.Layers[1], p.Layers[2] = p.Layers[2], p.Layers[1]
		}, ErrGravitationallyUnstable},
		{"eccentricity at bound", func(p *Params) { p.Eccentricity = 0.25 }, ErrLargeEccentricity},
		{"eccentricity above bound", func(p *Params) { p.Eccentricity = 0.3 }, ErrLargeEccentricity},
		{"negative eccentricity", func(p *Params) { p.Eccentricity = -0.01 }, ErrLargeEccentricity},
		{"eccentricity just below bound", func(p *Params) { p.Eccentricity = 0.2499 }, nil},
		{"circular orbit", func(p *Params) { p.Eccentricity = 0 }, nil},
		{"light planet", func(p *Params) { p.PlanetMass = 1e23 }, ErrExcessiveSatelliteMass},
		{"negative nsr period", func(p *Params) { p.NSRPeriod = -1 }, ErrNegativeNSRPeriod},
		{"no nsr period", func(p *Params) { p.NSRPeriod = 0 }, nil},
		{"infinite nsr period", func(p *Params) { p.NSRPeriod = math.Inf(1) }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := europaParams(t, newCountingSolver())
			tt.mutate(&p)

			_, err := New(p)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("want %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDerivedQuantities(t *testing.T) {
	sat, err := New(europaParams(t, newCountingSolver()))
	if err != nil {
		t.Fatal(err)
	}

	// Radius is the sum of layer thicknesses.
	wantRadius := 1.426e6 + 1.0e5 + 2.5e4 + 1.0e4
	if math.Abs(sat.Radius()-wantRadius) > 1e-6 {
		t.Errorf("radius: want %g, got %g", wantRadius, sat.Radius())
	}

	// Mass must match an independent shell-by-shell summation.
	var wantMass, r float64
	for _, l := range sat.Layers() {
		outer := r + l.Thickness
		wantMass += (4.0 / 3.0) * math.Pi * (math.Pow(outer, 3) - math.Pow(r, 3)) * l.Density
		r = outer
	}
	if rel := math.Abs(sat.Mass()-wantMass) / wantMass; rel > 1e-12 {
		t.Errorf("mass: want %g, got %g (rel err %g)", wantMass, sat.Mass(), rel)
	}

	wantDensity := wantMass / ((4.0 / 3.0) * math.Pi * math.Pow(wantRadius, 3))
	if rel := math.Abs(sat.MeanDensity()-wantDensity) / wantDensity; rel > 1e-12 {
		t.Errorf("mean density: want %g, got %g", wantDensity, sat.MeanDensity())
	}

	wantGravity := G * wantMass / (wantRadius * wantRadius)
	if rel := math.Abs(sat.SurfaceGravity()-wantGravity) / wantGravity; rel > 1e-12 {
		t.Errorf("surface gravity: want %g, got %g", wantGravity, sat.SurfaceGravity())
	}

	// Kepler III against Europa's actual ~3.55 day orbit.
	period := sat.OrbitPeriod()
	if period < 3.0*86400 || period > 4.0*86400 {
		t.Errorf("orbit period %g s outside plausible Europa range", period)
	}
	if rel := math.Abs(sat.MeanMotion()-2*math.Pi/period) / sat.MeanMotion(); rel > 1e-12 {
		t.Errorf("mean motion inconsistent with orbit period")
	}
}

func TestNSRMeanMotion(t *testing.T) {
	p := europaParams(t, newCountingSolver())
	sat, err := New(p)
	if err != nil {
		t.Fatal(err)
	}
	want := 2 * math.Pi / p.NSRPeriod
	if got := sat.NSRMeanMotion(); math.Abs(got-want) > 1e-20 {
		t.Errorf("nsr mean motion: want %g, got %g", want, got)
	}
	if !sat.HasNSR() {
		t.Error("expected HasNSR")
	}

	p.NSRPeriod = math.Inf(1)
	sat, err = New(p)
	if err != nil {
		t.Fatal(err)
	}
	if got := sat.NSRMeanMotion(); got != 0 {
		t.Errorf("infinite period: want 0 mean motion, got %g", got)
	}
	if !sat.HasNSR() {
		t.Error("infinite period still counts as having NSR")
	}

	p.NSRPeriod = 0
	sat, err = New(p)
	if err != nil {
		t.Fatal(err)
	}
	if sat.HasNSR() {
		t.Error("zero period means no NSR")
	}
}

func TestLoveNumbersCached(t *testing.T) {
	solver := newCountingSolver()
	sat, err := New(europaParams(t, solver))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	omega := sat.MeanMotion()

	n1, err := sat.LoveNumbers(ctx, omega)
	if err != nil {
		t.Fatal(err)
	}
	n2, err := sat.LoveNumbers(ctx, omega)
	if err != nil {
		t.Fatal(err)
	}
	if n1 != n2 {
		t.Error("repeat call returned different numbers")
	}
	if got := solver.calls.Load(); got != 1 {
		t.Errorf("want 1 solver call, got %d", got)
	}

	// A different frequency is a fresh solve.
	if _, err := sat.LoveNumbers(ctx, 2*omega); err != nil {
		t.Fatal(err)
	}
	if got := solver.calls.Load(); got != 2 {
		t.Errorf("want 2 solver calls, got %d", got)
	}

	// The relaxed-core variant caches separately, even at the same omega.
	if _, err := sat.LoveNumbersRelaxedCore(ctx, omega); err != nil {
		t.Fatal(err)
	}
	if got := solver.calls.Load(); got != 3 {
		t.Errorf("want 3 solver calls, got %d", got)
	}
}

func TestLoveNumbersInfinitePeriod(t *testing.T) {
	solver := newCountingSolver()
	sat, err := New(europaParams(t, solver))
	if err != nil {
		t.Fatal(err)
	}

	n, err := sat.LoveNumbers(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != love.Zero {
		t.Errorf("want zero love numbers, got %v", n)
	}
	if got := solver.calls.Load(); got != 0 {
		t.Errorf("solver must not run for omega=0, got %d calls", got)
	}
}

func TestLoveNumbersConcurrent(t *testing.T) {
	solver := newCountingSolver()
	solver.delay = 20 * time.Millisecond
	sat, err := New(europaParams(t, solver))
	if err != nil {
		t.Fatal(err)
	}
	omega := sat.MeanMotion()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := sat.LoveNumbers(context.Background(), omega); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if got := solver.calls.Load(); got != 1 {
		t.Errorf("want exactly 1 solver call under contention, got %d", got)
	}
}

func TestLoveNumbersValidation(t *testing.T) {
	bad := love.SolverFunc(func(context.Context, []love.LayerParams, float64) (love.Numbers, error) {
		// Positive imaginary part: response cannot lead the forcing.
		return love.Numbers{H2: complex(1.2, 1e-3), K2: 0.3, L2: 0.03}, nil
	})
	p := europaParams(t, bad)
	sat, err := New(p)
	if err != nil {
		t.Fatal(err)
	}
	_, err = sat.LoveNumbers(context.Background(), sat.MeanMotion())
	if !errors.Is(err, love.ErrInvalidNumbers) {
		t.Errorf("want ErrInvalidNumbers, got %v", err)
	}
}

func TestRelaxedCoreSoftensCore(t *testing.T) {
	var gotMu float64
	spy := love.SolverFunc(func(_ context.Context, layers []love.LayerParams, _ float64) (love.Numbers, error) {
		gotMu = layers[0].LameMu
		return newCountingSolver().n, nil
	})
	sat, err := New(europaParams(t, spy))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sat.LoveNumbersRelaxedCore(context.Background(), sat.MeanMotion()); err != nil {
		t.Fatal(err)
	}
	if want := 4.0e10 / 1000; gotMu != want {
		t.Errorf("want core mu %g, got %g", want, gotMu)
	}

	// The satellite's own layers are untouched.
	if got := sat.Layers()[0].LameMu; got != 4.0e10 {
		t.Errorf("satellite core mu mutated: %g", got)
	}
}
