package make

import (
	"github.com/alexozer/curvex"

	"github.com/ungerik/go3d/float64/vec3"
)

// Line is the degree 1 NURBS curve from first to last over [0, 1]. See curvex.NewLine
// for the analytic line.
func Line(first, last *vec3.T) *curvex.NurbsCurve {
	return Polyline([]vec3.T{*first, *last})
}

// Generate the control points, weights, and knots of a polyline curve, parametrized
// by normalized chord length
//
// **params**
// + points of the polyline, at least two and not all coincident
//
// **returns**
// + a degree 1 NurbsCurve through the points over [0, 1]
func Polyline(pts []vec3.T) *curvex.NurbsCurve {
	knots := make([]float64, len(pts)+2)

	var lsum float64
	for i := 0; i < len(pts)-1; i++ {
		lsum += vec3.Distance(&pts[i], &pts[i+1])
		knots[i+2] = lsum
	}
	knots[len(knots)-1] = lsum

	for i := range knots {
		knots[i] /= lsum
	}

	return curvex.NewNurbsCurveUnchecked(1, pts, ones(len(pts)), knots)
}

func ones(n int) []float64 {
	res := make([]float64, n)
	for i := range res {
		res[i] = 1
	}
	return res
}
