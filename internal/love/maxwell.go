package love

// Frequency-dependent Maxwell rheology. A Maxwell solid responds to a
// periodic forcing with complex effective Lame parameters; the imaginary
// parts carry the viscous phase lag. Formulae follow Wahr et al. (2008).

// Delta measures how viscously the layer responds to a forcing at angular
// frequency omega: Delta = mu/(omega*eta). Large Delta means the layer
// flows rather than flexes.
func (l LayerParams) Delta(omega float64) float64 {
	return l.LameMu / (omega * l.Viscosity)
}

// MuTwiddle is the complex, frequency-dependent shear modulus:
// mu~ = mu / (1 - i*Delta).
func (l LayerParams) MuTwiddle(omega float64) complex128 {
	return complex(l.LameMu, 0) / (1 - 1i*complex(l.Delta(omega), 0))
}

// LambdaTwiddle is the complex, frequency-dependent second Lame parameter:
// lambda~ = lambda * (1 - i*Delta*(2mu+3lambda)/(3lambda)) / (1 - i*Delta).
func (l LayerParams) LambdaTwiddle(omega float64) complex128 {
	d := complex(l.Delta(omega), 0)
	num := 1 - 1i*d*complex((2.0*l.LameMu+3.0*l.LameLambda)/(3.0*l.LameLambda), 0)
	den := 1 - 1i*d
	return complex(l.LameLambda, 0) * num / den
}
