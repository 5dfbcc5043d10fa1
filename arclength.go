package curvex

import (
	"gonum.org/v1/gonum/integrate/quad"
)

const (
	arcLengthPieces = 8
	arcLengthOrder  = 16
)

// ArcLength approximates the length of c between the parameters a and b by
// Gauss-Legendre quadrature of |C'(u)| over a fixed number of sub-intervals.
// The curve is assumed smooth on (a, b). The result is negative when b < a.
func ArcLength(c Curve, a, b float64) float64 {
	if a == b {
		return 0
	}
	if b < a {
		return -ArcLength(c, b, a)
	}

	speed := func(u float64) float64 {
		return c.Derivatives(u, 1)[1].Length()
	}

	var sum float64
	step := (b - a) / arcLengthPieces
	for i := 0; i < arcLengthPieces; i++ {
		lo := a + step*float64(i)
		sum += quad.Fixed(speed, lo, lo+step, arcLengthOrder, quad.Legendre{}, 0)
	}

	return sum
}
