package body

import (
	"errors"
	"fmt"
)

// Validation errors for satellite construction. All are raised eagerly at
// construction time, never during tensor evaluation.
var (
	// ErrLayerCount indicates a structure with other than exactly 4 layers.
	ErrLayerCount = errors.New("body: satellite must have exactly 4 layers")

	// ErrGravitationallyUnstable indicates a layer denser than the one
	// beneath it.
	ErrGravitationallyUnstable = errors.New("body: layer density increases outward")

	// ErrLargeEccentricity indicates an orbital eccentricity outside
	// [0, 0.25); the small-eccentricity expansion behind the stress
	// formulae breaks down beyond that.
	ErrLargeEccentricity = errors.New("body: orbital eccentricity out of range [0, 0.25)")

	// ErrExcessiveSatelliteMass indicates a planet less than 10x as
	// massive as the satellite, which almost certainly means bad input.
	ErrExcessiveSatelliteMass = errors.New("body: planet mass under 10x satellite mass")

	// ErrNegativeNSRPeriod indicates a negative NSR period.
	ErrNegativeNSRPeriod = errors.New("body: negative NSR period")

	// ErrMissingNSRPeriod indicates an NSR stress field was requested for
	// a satellite whose NSR period was never set.
	ErrMissingNSRPeriod = errors.New("body: satellite has no NSR period")

	// ErrLowDensity indicates a layer density at or below the physical
	// floor (watch the units: water is 1000 kg/m^3, not 1 g/cm^3).
	ErrLowDensity = errors.New("body: layer density at or below 100 kg/m^3")

	// ErrLowThickness indicates a layer thinner than the model resolves.
	ErrLowThickness = errors.New("body: layer thickness at or below 100 m")

	// ErrNegativeLayerParam indicates a negative elastic modulus,
	// viscosity, or tensile strength.
	ErrNegativeLayerParam = errors.New("body: negative layer material parameter")
)

// ParamError attaches the offending parameter and value to a validation
// error so the caller can fix the input.
type ParamError struct {
	Param   string
	Value   float64
	Wrapped error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%v: %s = %g", e.Wrapped, e.Param, e.Value)
}

func (e *ParamError) Unwrap() error {
	return e.Wrapped
}

func paramErr(err error, param string, value float64) error {
	return &ParamError{Param: param, Value: value, Wrapped: err}
}
