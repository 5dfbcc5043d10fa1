package internal

import "math"

// Mat2 is a row-major 2x2 matrix
//
//	| A B |
//	| C D |
type Mat2 struct {
	A, B, C, D float64
}

func (this Mat2) Det() float64 {
	return this.A*this.D - this.B*this.C
}

// Solve the system this * (x, y) = (f, s) by Cramer's rule.
//
// ok is false when the matrix is singular relative to its own scale, i.e. when
// |det| is below Epsilon times the product of the row norms.
func (this Mat2) Solve(f, s float64) (x, y float64, ok bool) {
	det := this.Det()
	scale := math.Hypot(this.A, this.B) * math.Hypot(this.C, this.D)

	if scale == 0 || math.Abs(det) <= Epsilon*scale {
		return 0, 0, false
	}

	x = (f*this.D - this.B*s) / det
	y = (this.A*s - f*this.C) / det
	return x, y, true
}
