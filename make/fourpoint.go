package make

import (
	"github.com/alexozer/curvex"

	"github.com/ungerik/go3d/float64/vec3"
)

// Generate the control points, weights, and knots of a surface defined by 4 points
//
// **params**
// + first point in counter-clockwise form
// + second point in counter-clockwise form
// + third point in counter-clockwise form
// + forth point in counter-clockwise form
// + degree in both directions, 3 if 0
//
// **returns**
// + a bilinear patch as a polynomial NurbsSurface over [0, 1] x [0, 1]
func FourPointSurface(p1, p2, p3, p4 *vec3.T, degree int) *curvex.NurbsSurface {
	if degree <= 0 {
		degree = 3
	}
	fdegree := float64(degree)

	pts := make([][]vec3.T, degree+1)
	weights := make([][]float64, degree+1)
	for i := range pts {
		l := 1 - float64(i)/fdegree
		p1p2 := vec3.Interpolate(p1, p2, l)
		p4p3 := vec3.Interpolate(p4, p3, l)

		pts[i] = make([]vec3.T, degree+1)
		for j := range pts[i] {
			pts[i][j] = vec3.Interpolate(&p1p2, &p4p3, 1-float64(j)/fdegree)
		}
		weights[i] = ones(degree + 1)
	}

	knots := make([]float64, 2*(degree+1))
	for i := degree + 1; i < len(knots); i++ {
		knots[i] = 1
	}

	return curvex.NewNurbsSurfaceUnchecked(degree, degree, pts, weights, knots, knots)
}
