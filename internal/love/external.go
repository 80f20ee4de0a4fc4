package love

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Layer ordering fixed by the external code's input deck.
const (
	layerCore = iota
	layerOcean
	layerIceLower
	layerIceUpper
	layerCount
)

const day = 86400.0

// ExternalSolver wraps the external 4-layer viscoelastic Love number code
// (a Fortran program with a fixed-format input deck). Each solve runs the
// program in a private scratch directory and parses the trailing line of
// its output file.
//
// The code assumes a Maxwell rheology, a liquid ocean decoupling the ice
// shell from the core, and exactly four layers.
type ExternalSolver struct {
	// Command is the program to invoke. Defaults to "calcLoveWahr4Layer"
	// resolved via PATH.
	Command string
}

func (s *ExternalSolver) command() string {
	if s.Command != "" {
		return s.Command
	}
	return "calcLoveWahr4Layer"
}

func (s *ExternalSolver) Solve(ctx context.Context, layers []LayerParams, omega float64) (Numbers, error) {
	if len(layers) != layerCount {
		return Numbers{}, fmt.Errorf("%w: got %d", ErrLayerCount, len(layers))
	}

	// The code becomes unreliable once either ice layer responds too
	// viscously to the forcing.
	for _, n := range []int{layerIceLower, layerIceUpper} {
		if d := layers[n].Delta(omega); d > MaxDelta {
			return Numbers{}, fmt.Errorf("%w: delta=%g in layer %d at omega=%g",
				ErrExcessiveDelta, d, n, omega)
		}
	}

	dir, err := os.MkdirTemp("", "lovetmp-")
	if err != nil {
		return Numbers{}, err
	}
	defer os.RemoveAll(dir)

	if err := os.WriteFile(filepath.Join(dir, "in.love"), []byte(inputDeck(layers, omega)), 0o644); err != nil {
		return Numbers{}, err
	}

	cmd := exec.CommandContext(ctx, s.command())
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return Numbers{}, fmt.Errorf("love solver %s: %w: %s", s.command(), err, strings.TrimSpace(string(out)))
	}

	raw, err := os.ReadFile(filepath.Join(dir, "out.love"))
	if err != nil {
		return Numbers{}, err
	}
	return parseOutput(string(raw))
}

// inputDeck renders the fixed-format input the external code reads from
// in.love. Lengths go in as km, densities as g/cm^3, the forcing period
// in earth days; node counts match the reference model setup.
func inputDeck(layers []LayerParams, omega float64) string {
	var radius, mass float64
	for _, l := range layers {
		outer := radius + l.Thickness
		mass += (4.0 / 3.0) * math.Pi * (outer*outer*outer - radius*radius*radius) * l.Density
		radius = outer
	}
	meanDensity := mass / ((4.0 / 3.0) * math.Pi * radius * radius * radius)
	period := 2 * math.Pi / omega

	core := layers[layerCore]
	ocean := layers[layerOcean]
	iceLower := layers[layerIceLower]
	iceUpper := layers[layerIceUpper]

	var b strings.Builder
	line := func(v interface{}, label string) {
		fmt.Fprintf(&b, "%v\t\t%s\n", v, label)
	}
	line(meanDensity/1000, "Mean Density of Satellite (g/cm^3)")
	line(1, "Rheology (1=Maxwell, 0=elastic)")
	line(period/day, "Forcing period (earth days, 86400 seconds)")
	line(iceUpper.Viscosity, "Viscosity of upper ice layer (Pa sec)")
	line(iceLower.Viscosity, "Viscosity of lower ice layer (Pa sec)")
	line(core.YoungsModulus(), "Young's modulus for the rocky core")
	line(core.PoissonsRatio(), "Poisson's ratio for the rocky core")
	line(core.Density/1000, "Density of the rocky core (g/cm^3)")
	line(iceUpper.YoungsModulus(), "Young's modulus for ice")
	line(iceUpper.PoissonsRatio(), "Poisson's ratio for ice")
	line(iceUpper.Density/1000, "Density of ice")
	line(1, "Decoupling fluid layer (e.g. global ocean)? (1=yes, 0=no)")
	line(ocean.Thickness/1000, "Thickness of fluid layer (km)")
	line(ocean.Density/1000, "Density of fluid layer (g/cm^3)")
	line(ocean.PWaveVelocity()/1000, "P-wave velocity in fluid layer (km/sec)")
	line(radius/1000, "Total radius of satellite (km)")
	line(iceUpper.Thickness/1000, "Thickness of upper (cold) ice layer (km)")
	line(iceLower.Thickness/1000, "Thickness of lower (warm) ice layer (km)")
	line(165, "Total number of calculation nodes")
	line(3, "Number of density discontinuities")
	line(154, "Node number of innermost boundary")
	line(161, "Node number of 2nd innermost boundary")
	line(163, "Node number of 3rd innermost boundary")
	return b.String()
}

// parseOutput extracts (h2, k2, l2) from the final line of out.love. The
// line carries whitespace-separated columns; fields 3-4, 6-7 and 9-10
// (zero-based) are the real and imaginary parts of h2, k2 and l2.
func parseOutput(out string) (Numbers, error) {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) == 0 {
		return Numbers{}, fmt.Errorf("%w: empty output", ErrSolverOutput)
	}
	fields := strings.Fields(lines[len(lines)-1])
	if len(fields) < 11 {
		return Numbers{}, fmt.Errorf("%w: want >=11 columns, got %d", ErrSolverOutput, len(fields))
	}

	vals := make([]float64, 6)
	for i, idx := range []int{3, 4, 6, 7, 9, 10} {
		v, err := strconv.ParseFloat(fields[idx], 64)
		if err != nil {
			return Numbers{}, fmt.Errorf("%w: column %d: %v", ErrSolverOutput, idx, err)
		}
		vals[i] = v
	}
	return Numbers{
		H2: complex(vals[0], vals[1]),
		K2: complex(vals[2], vals[3]),
		L2: complex(vals[4], vals[5]),
	}, nil
}
