package make

import (
	"github.com/alexozer/curvex"

	"github.com/ungerik/go3d/float64/vec3"
)

// Generate the control points, weights, and knots of an extruded surface. The u
// direction runs along the axis from the translated profile back to the profile; v
// follows the profile.
//
// **params**
// + axis of the extrusion
// + length of the extrusion
// + the profile curve
//
// **returns**
// + a NurbsSurface of degree 2 in u and the profile's degree in v
func ExtrudedSurface(axis *vec3.T, length float64, profile *curvex.NurbsCurve) *curvex.NurbsSurface {
	profPts := profile.ControlPoints()
	profWeights := profile.Weights()

	translation := axis.Scaled(length)
	halfTranslation := translation.Scaled(0.5)

	controlPoints, weights := make([][]vec3.T, 3), make([][]float64, 3)
	for i := range controlPoints {
		controlPoints[i] = make([]vec3.T, len(profPts))
		weights[i] = append([]float64(nil), profWeights...)
	}

	for j := range profPts {
		controlPoints[0][j] = vec3.Add(&translation, &profPts[j])
		controlPoints[1][j] = vec3.Add(&halfTranslation, &profPts[j])
		controlPoints[2][j] = profPts[j]
	}

	return curvex.NewNurbsSurfaceUnchecked(
		2, profile.Degree(),
		controlPoints, weights,
		[]float64{0, 0, 0, 1, 1, 1}, profile.Knots(),
	)
}

// Generate the control points, weights, and knots of a cylinder
//
// **params**
// + normalized axis of cylinder
// + xaxis in plane of cylinder
// + position of base of cylinder
// + height from base to top
// + radius of the cylinder
func CylindricalSurface(axis, xaxis *vec3.T, base *vec3.T, height, radius float64) *curvex.NurbsSurface {
	yaxis := vec3.Cross(axis, xaxis)
	return ExtrudedSurface(axis, height, Circle(base, xaxis, &yaxis, radius))
}
