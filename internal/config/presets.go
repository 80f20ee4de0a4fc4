package config

import "sort"

// Presets are ready-to-run satellite definitions. Europa numbers follow
// the usual 4-layer model: silicate core, global ocean, warm convecting
// lower ice, cold stiff upper ice.
var Presets = map[string]*Config{
	"europa": {
		Satellite: SatelliteConfig{
			Name:          "JupiterEuropa",
			PlanetMass:    1.8986e27,
			Eccentricity:  0.0094,
			SemimajorAxis: 6.711e8,
			NSRPeriod:     3.156e12, // ~100 kyr shell rotation
			Layers: []LayerConfig{
				{
					Role:       "CORE",
					Density:    3300,
					LameMu:     4.0e10,
					LameLambda: 4.0e10,
					Thickness:  1.426e6,
					Viscosity:  0,
				},
				{
					Role:       "OCEAN",
					Density:    1000,
					LameMu:     0,
					LameLambda: 2.2e9,
					Thickness:  1.0e5,
					Viscosity:  0,
				},
				{
					Role:       "ICE_LOWER",
					Density:    940,
					LameMu:     3.487e9,
					LameLambda: 6.78e9,
					Thickness:  2.5e4,
					Viscosity:  1.0e14,
				},
				{
					Role:            "ICE_UPPER",
					Density:         940,
					LameMu:          3.487e9,
					LameLambda:      6.78e9,
					Thickness:       1.0e4,
					Viscosity:       1.0e21,
					TensileStrength: 1.7e6,
				},
			},
		},
		Stresses: []string{"diurnal", "nsr"},
		Grid: GridConfig{
			Name:   "europa-global",
			LatMin: -75, LatMax: 75, LatNum: 11,
			LonMin: 0, LonMax: 330, LonNum: 12,
			OrbitMin: 0, OrbitMax: 330, OrbitNum: 12,
		},
	},
}

func init() {
	// Europa with a tidally locked shell: same structure, no NSR forcing.
	// Built here because a map literal cannot reference itself.
	locked := *Presets["europa"]
	sc := locked.Satellite
	sc.NSRPeriod = 0
	locked.Satellite = sc
	locked.Stresses = []string{"diurnal"}
	Presets["europa-locked"] = &locked
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := *cfg
	return &out
}

// ListPresets returns the available preset names, sorted.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
