package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/tidestress/internal/body"
	"github.com/san-kum/tidestress/internal/grid"
	"github.com/san-kum/tidestress/internal/love"
)

// Config errors.
var (
	// ErrMissingParam indicates a required satellite parameter was left
	// unset (or zero) in the config.
	ErrMissingParam = errors.New("config: missing required parameter")

	// ErrUnknownRole indicates an unrecognized layer role string.
	ErrUnknownRole = errors.New("config: unknown layer role")

	// ErrUnknownStress indicates an unrecognized stress field name.
	ErrUnknownStress = errors.New("config: unknown stress field")
)

type Config struct {
	Satellite SatelliteConfig `yaml:"satellite"`
	Stresses  []string        `yaml:"stresses"`
	Grid      GridConfig      `yaml:"grid"`
	Love      *LoveConfig     `yaml:"love,omitempty"`
}

// SatelliteConfig mirrors body.Params in YAML form. All quantities SI.
type SatelliteConfig struct {
	Name          string        `yaml:"name"`
	PlanetMass    float64       `yaml:"planet_mass"`
	Eccentricity  float64       `yaml:"orbit_eccentricity"`
	SemimajorAxis float64       `yaml:"orbit_semimajor_axis"`
	NSRPeriod     float64       `yaml:"nsr_period"`
	Layers        []LayerConfig `yaml:"layers"`
}

type LayerConfig struct {
	Role            string  `yaml:"role"`
	Density         float64 `yaml:"density"`
	LameMu          float64 `yaml:"lame_mu"`
	LameLambda      float64 `yaml:"lame_lambda"`
	Thickness       float64 `yaml:"thickness"`
	Viscosity       float64 `yaml:"viscosity"`
	TensileStrength float64 `yaml:"tensile_strength"`
}

// GridConfig describes the calculation grid. Latitude and longitude are
// degrees (north and east positive). The time axis is given either
// directly in seconds (time_*) or as degrees of orbital position past
// pericenter (orbit_*); orbital position wins if both are set.
type GridConfig struct {
	Name    string  `yaml:"name"`
	LatMin  float64 `yaml:"lat_min"`
	LatMax  float64 `yaml:"lat_max"`
	LatNum  int     `yaml:"lat_num"`
	LonMin  float64 `yaml:"lon_min"`
	LonMax  float64 `yaml:"lon_max"`
	LonNum  int     `yaml:"lon_num"`
	TimeMin float64 `yaml:"time_min"`
	TimeMax float64 `yaml:"time_max"`
	TimeNum int     `yaml:"time_num"`

	OrbitMin float64 `yaml:"orbit_min"`
	OrbitMax float64 `yaml:"orbit_max"`
	OrbitNum int     `yaml:"orbit_num"`
}

// LoveConfig pins the Love numbers to fixed values instead of running the
// external solver. Useful for published values and for machines without
// the solver installed.
type LoveConfig struct {
	H2Real float64 `yaml:"h2_real"`
	H2Imag float64 `yaml:"h2_imag"`
	K2Real float64 `yaml:"k2_real"`
	K2Imag float64 `yaml:"k2_imag"`
	L2Real float64 `yaml:"l2_real"`
	L2Imag float64 `yaml:"l2_imag"`
}

func DefaultConfig() *Config {
	cfg := Presets["europa"]
	out := *cfg
	return &out
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if len(cfg.Stresses) == 0 {
		cfg.Stresses = []string{"diurnal", "nsr"}
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Solver picks the Love number source: pinned values when a love block is
// present, the external 4-layer code otherwise.
func (c *Config) Solver() love.Solver {
	if c.Love != nil {
		return love.StaticSolver{Numbers: love.Numbers{
			H2: complex(c.Love.H2Real, c.Love.H2Imag),
			K2: complex(c.Love.K2Real, c.Love.K2Imag),
			L2: complex(c.Love.L2Real, c.Love.L2Imag),
		}}
	}
	return &love.ExternalSolver{}
}

// BuildSatellite validates the satellite section and constructs the
// immutable body.Satellite using the given Love number solver.
func (c *Config) BuildSatellite(solver love.Solver) (*body.Satellite, error) {
	sc := c.Satellite
	if sc.PlanetMass == 0 {
		return nil, fmt.Errorf("%w: planet_mass", ErrMissingParam)
	}
	if sc.SemimajorAxis == 0 {
		return nil, fmt.Errorf("%w: orbit_semimajor_axis", ErrMissingParam)
	}
	if len(sc.Layers) == 0 {
		return nil, fmt.Errorf("%w: layers", ErrMissingParam)
	}

	layers := make([]body.Layer, 0, len(sc.Layers))
	for _, lc := range sc.Layers {
		role, err := parseRole(lc.Role)
		if err != nil {
			return nil, err
		}
		layer, err := body.NewLayer(role, love.LayerParams{
			Density:    lc.Density,
			LameMu:     lc.LameMu,
			LameLambda: lc.LameLambda,
			Thickness:  lc.Thickness,
			Viscosity:  lc.Viscosity,
		}, lc.TensileStrength)
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
	}

	return body.New(body.Params{
		Name:          sc.Name,
		PlanetMass:    sc.PlanetMass,
		SemimajorAxis: sc.SemimajorAxis,
		Eccentricity:  sc.Eccentricity,
		NSRPeriod:     sc.NSRPeriod,
		Layers:        layers,
		Solver:        solver,
	})
}

// BuildGrid resolves the grid section against a satellite (needed to turn
// orbital position into seconds) and validates it.
func (c *Config) BuildGrid(sat *body.Satellite) (grid.Grid, error) {
	gc := c.Grid
	g := grid.Grid{
		Name:   gc.Name,
		LatMin: gc.LatMin, LatMax: gc.LatMax, LatNum: gc.LatNum,
		LonMin: gc.LonMin, LonMax: gc.LonMax, LonNum: gc.LonNum,
		TimeMin: gc.TimeMin, TimeMax: gc.TimeMax, TimeNum: gc.TimeNum,
	}
	if gc.OrbitNum > 0 {
		period := sat.OrbitPeriod()
		g.TimeMin = period * gc.OrbitMin / 360.0
		g.TimeMax = period * gc.OrbitMax / 360.0
		g.TimeNum = gc.OrbitNum
	}
	return g, g.Validate()
}

func parseRole(s string) (body.Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CORE":
		return body.RoleCore, nil
	case "OCEAN":
		return body.RoleOcean, nil
	case "ICE_LOWER":
		return body.RoleIceLower, nil
	case "ICE_UPPER":
		return body.RoleIceUpper, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}
