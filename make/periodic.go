package make

import (
	"github.com/alexozer/curvex"

	"github.com/cockroachdb/errors"
	"github.com/ungerik/go3d/float64/vec3"
)

// PeriodicCurve builds a closed B-spline that is smooth across its seam, on uniform
// knots over [0, len(pts)]. The first degree points are repeated at the end of the
// control polygon so each point influences the curve exactly degree+1 spans.
//
// **params**
// + the degree
// + the distinct control points, more than degree of them
// + optional weights, one per point; nil gives a polynomial curve
func PeriodicCurve(degree int, pts []vec3.T, weights []float64) (*curvex.NurbsCurve, error) {
	if degree < 1 {
		return nil, errors.Newf("periodic curve degree %d must be at least 1", degree)
	}
	if len(pts) <= degree {
		return nil, errors.Newf("periodic curve of degree %d needs more than %d points, got %d", degree, degree, len(pts))
	}
	if weights == nil {
		weights = ones(len(pts))
	} else if len(weights) != len(pts) {
		return nil, errors.Newf("%d weights for %d points", len(weights), len(pts))
	}

	wrappedPts := append(append([]vec3.T(nil), pts...), pts[:degree]...)
	wrappedWeights := append(append([]float64(nil), weights...), weights[:degree]...)

	knots := make([]float64, len(wrappedPts)+degree+1)
	for i := range knots {
		knots[i] = float64(i - degree)
	}

	res, err := curvex.NewPeriodicNurbsCurve(degree, wrappedPts, wrappedWeights, knots)
	return res, errors.Wrap(err, "periodic curve")
}
