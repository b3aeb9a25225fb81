package marley

import "math"

// realSqrt takes the square root of x. A negative argument is assumed to be
// the result of floating-point roundoff, so zero is returned instead of NaN.
func realSqrt(x float64) float64 {
	if x < 0 {
		return 0
	}
	return math.Sqrt(x)
}

const invPhi = 0.6180339887498949 // 1/golden ratio

// maximize locates the maximum of f on [a, b] with a golden-section search,
// returning the abscissa and the function value there. The search stops when
// the bracketing interval shrinks below eps.
func maximize(f func(float64) float64, a, b, eps float64) (xmax, fmax float64) {
	lo, hi := a, b
	x1 := hi - invPhi*(hi-lo)
	x2 := lo + invPhi*(hi-lo)
	f1, f2 := f(x1), f(x2)
	for hi-lo > eps {
		if f1 < f2 {
			lo = x1
			x1, f1 = x2, f2
			x2 = lo + invPhi*(hi-lo)
			f2 = f(x2)
		} else {
			hi = x2
			x2, f2 = x1, f1
			x1 = hi - invPhi*(hi-lo)
			f1 = f(x1)
		}
	}
	xmax = 0.5 * (lo + hi)
	fmax = f(xmax)
	// Guard against a maximum at an endpoint of the original interval.
	if fa := f(a); fa > fmax {
		xmax, fmax = a, fa
	}
	if fb := f(b); fb > fmax {
		xmax, fmax = b, fb
	}
	return xmax, fmax
}
