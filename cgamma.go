package marley

import (
	"math"
	"math/cmplx"
)

// Lanczos approximation coefficients for g = 607/128.
var lanczosCoeffs = []float64{
	0.99999999999999709182,
	57.156235665862923517,
	-59.597960355475491248,
	14.136097974741747174,
	-0.49191381609762019978,
	0.33994649984811888699e-4,
	0.46523628927048575665e-4,
	-0.98374475304879564677e-4,
	0.15808870322491248884e-3,
	-0.21026444172410488319e-3,
	0.21743961811521264320e-3,
	-0.16431810653676389022e-3,
	0.84418223983852743293e-4,
	-0.26190838401581408670e-4,
	0.36899182659531622704e-5,
}

const lanczosG = 607.0 / 128.0

// cgamma computes the Gamma function for a complex argument using the
// Lanczos approximation. Arguments with Re(z) < 0.5 are handled with the
// reflection formula.
func cgamma(z complex128) complex128 {
	if real(z) < 0.5 {
		// Gamma(z) Gamma(1-z) = pi / sin(pi z)
		return complex(math.Pi, 0) /
			(cmplx.Sin(complex(math.Pi, 0)*z) * cgamma(1-z))
	}
	z -= 1
	x := complex(lanczosCoeffs[0], 0)
	for k := 1; k < len(lanczosCoeffs); k++ {
		x += complex(lanczosCoeffs[k], 0) / (z + complex(float64(k), 0))
	}
	t := z + complex(lanczosG+0.5, 0)
	return complex(math.Sqrt(2*math.Pi), 0) *
		cmplx.Pow(t, z+0.5) * cmplx.Exp(-t) * x
}
