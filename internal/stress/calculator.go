package stress

import "errors"

// Calculator errors.
var (
	// ErrNoFields indicates an attempt to build a calculator with no
	// stress fields.
	ErrNoFields = errors.New("stress: calculator needs at least one field")

	// ErrMixedSatellites indicates fields bound to different satellites.
	ErrMixedSatellites = errors.New("stress: all fields must share one satellite")
)

// Tensor is the symmetric 2x2 surface membrane stress tensor, reduced to
// its three independent components (Ttp equals Tpt).
type Tensor struct {
	Ttt float64
	Tpt float64
	Tpp float64
}

// Add returns the elementwise sum of two tensors.
func (t Tensor) Add(other Tensor) Tensor {
	return Tensor{
		Ttt: t.Ttt + other.Ttt,
		Tpt: t.Tpt + other.Tpt,
		Tpp: t.Tpp + other.Tpp,
	}
}

// Trace returns Ttt + Tpp, the first tensor invariant.
func (t Tensor) Trace() float64 { return t.Ttt + t.Tpp }

// Calculator superposes one or more stress fields bound to the same
// satellite. It is immutable and safe for concurrent use; each Tensor
// call is independent and cheap (the expensive Love number retrieval
// already happened when the fields were built).
type Calculator struct {
	fields []*Field
}

// NewCalculator builds a calculator over the given fields. The list must
// be non-empty and every field must be bound to the same satellite.
func NewCalculator(fields ...*Field) (*Calculator, error) {
	if len(fields) == 0 {
		return nil, ErrNoFields
	}
	sat := fields[0].sat
	for _, f := range fields[1:] {
		if f.sat != sat {
			return nil, ErrMixedSatellites
		}
	}
	c := &Calculator{fields: make([]*Field, len(fields))}
	copy(c.fields, fields)
	return c, nil
}

// Fields returns the fields in summation order.
func (c *Calculator) Fields() []*Field {
	out := make([]*Field, len(c.fields))
	copy(out, c.fields)
	return out
}

// Tensor evaluates every field at (theta, phi, t) and sums componentwise,
// in construction order for reproducibility.
func (c *Calculator) Tensor(theta, phi, t float64) Tensor {
	var sum Tensor
	for _, f := range c.fields {
		sum = sum.Add(Tensor{
			Ttt: f.Ttt(theta, phi, t),
			Tpt: f.Tpt(theta, phi, t),
			Tpp: f.Tpp(theta, phi, t),
		})
	}
	return sum
}
