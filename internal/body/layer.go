package body

import (
	"fmt"

	"github.com/san-kum/tidestress/internal/love"
)

// Role identifies a layer's place in the fixed 4-layer structure.
type Role int

const (
	RoleCore Role = iota
	RoleOcean
	RoleIceLower
	RoleIceUpper
)

var roleNames = map[Role]string{
	RoleCore:     "CORE",
	RoleOcean:    "OCEAN",
	RoleIceLower: "ICE_LOWER",
	RoleIceUpper: "ICE_UPPER",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// Layer is one homogeneous spherical shell. A layer knows only its own
// material properties and radial thickness; where it sits in the satellite
// is given by the ordering of the Satellite's layer list, so volume and
// mass are computed by the Satellite, not here.
type Layer struct {
	love.LayerParams
	Role            Role
	TensileStrength float64 // Pa, only meaningful for the surface layer
}

// Physical floors below which layer parameters are rejected. SI units
// throughout; the density floor mostly catches g/cm^3 inputs.
const (
	MinLayerDensity   = 100.0 // kg/m^3
	MinLayerThickness = 100.0 // m
)

// NewLayer builds a validated, immutable layer.
func NewLayer(role Role, p love.LayerParams, tensileStrength float64) (Layer, error) {
	l := Layer{LayerParams: p, Role: role, TensileStrength: tensileStrength}
	return l, l.validate()
}

func (l Layer) validate() error {
	tag := l.Role.String()
	if l.Density <= MinLayerDensity {
		return paramErr(ErrLowDensity, "DENSITY_"+tag, l.Density)
	}
	if l.Thickness <= MinLayerThickness {
		return paramErr(ErrLowThickness, "THICKNESS_"+tag, l.Thickness)
	}
	if l.LameMu < 0 {
		return paramErr(ErrNegativeLayerParam, "LAME_MU_"+tag, l.LameMu)
	}
	if l.LameLambda < 0 {
		return paramErr(ErrNegativeLayerParam, "LAME_LAMBDA_"+tag, l.LameLambda)
	}
	if l.Viscosity < 0 {
		return paramErr(ErrNegativeLayerParam, "VISCOSITY_"+tag, l.Viscosity)
	}
	if l.TensileStrength < 0 {
		return paramErr(ErrNegativeLayerParam, "TENSILE_STR_"+tag, l.TensileStrength)
	}
	return nil
}
